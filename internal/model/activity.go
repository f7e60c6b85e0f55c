package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ActivityAction identifies the kind of tracked user action.
type ActivityAction string

const (
	ActionLogin           ActivityAction = "LOGIN"
	ActionLogout          ActivityAction = "LOGOUT"
	ActionUserCreated     ActivityAction = "USER_CREATED"
	ActionUserUpdated     ActivityAction = "USER_UPDATED"
	ActionUserDeactivated ActivityAction = "USER_DEACTIVATED"
	ActionReleaseCreated  ActivityAction = "RELEASE_CREATED"
	ActionReleaseUpdated  ActivityAction = "RELEASE_UPDATED"
	ActionReleaseDeleted  ActivityAction = "RELEASE_DELETED"
	ActionReleasePublish  ActivityAction = "RELEASE_PUBLISHED"
	ActionPromptUsed      ActivityAction = "PROMPT_USED"
	ActionSystemEvent     ActivityAction = "SYSTEM_EVENT"
)

type ActivityResource string

const (
	ResourceAuth    ActivityResource = "AUTH"
	ResourceUser    ActivityResource = "USER"
	ResourcePrompt  ActivityResource = "PROMPT"
	ResourceRelease ActivityResource = "RELEASE"
	ResourceSystem  ActivityResource = "SYSTEM"
	ResourceReport  ActivityResource = "REPORT"
)

// MaxActivityDetails caps the free-text details field; longer values are
// truncated before persistence.
const MaxActivityDetails = 1000

// Activity is one append-only audit record. Records are never mutated or
// deleted by normal flow.
type Activity struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      string             `bson:"user_id" json:"userId"`
	UserName    string             `bson:"user_name" json:"userName"`
	UserEmail   string             `bson:"user_email" json:"userEmail"`
	UserRole    Role               `bson:"user_role" json:"userRole"`
	Action      ActivityAction     `bson:"action" json:"action"`
	Resource    ActivityResource   `bson:"resource" json:"resource"`
	ResourceID  string             `bson:"resource_id,omitempty" json:"resourceId,omitempty"`
	Application *Application       `bson:"application,omitempty" json:"application,omitempty"`
	Details     string             `bson:"details" json:"details"`
	IPAddress   string             `bson:"ip_address,omitempty" json:"ipAddress,omitempty"`
	UserAgent   string             `bson:"user_agent,omitempty" json:"userAgent,omitempty"`
	Timestamp   time.Time          `bson:"timestamp" json:"timestamp"`
	Metadata    map[string]any     `bson:"metadata,omitempty" json:"metadata,omitempty"`
}
