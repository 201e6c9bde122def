// Package points defines the civic-engagement point awards.
package points

const (
	ReportIssue  = 5
	JoinGroup    = 10
	CreateGroup  = 25
	ResolveIssue = 50
)
