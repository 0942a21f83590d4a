package models

// Member log operations
const (
	OpCreateMember = "create member"
	OpGetMember    = "get member"
	OpListMembers  = "list members"
	OpUpdateMember = "update member"
	OpDeleteMember = "delete member"
)

// Business event actions recorded by the monitoring package
const (
	EventMemberCreated = "member_created"
	EventMemberUpdated = "member_updated"
	EventMemberDeleted = "member_deleted"
)

// Business event outcomes
const (
	OutcomeSuccess  = "success"
	OutcomeNotFound = "not_found"
	OutcomeFailure  = "failure"
)
