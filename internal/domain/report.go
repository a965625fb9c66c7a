package domain

import (
	"time"
)

// ReportStatus tracks a medical report through upload and analysis.
type ReportStatus string

const (
	ReportPending  ReportStatus = "pending"  // upload URL issued, file may not be there yet
	ReportAnalyzed ReportStatus = "analyzed" // analysis stored
	ReportFailed   ReportStatus = "failed"
)

// Report stores metadata about a medical report uploaded by a user.
// The actual file resides in S3.
type Report struct {
	ID          string          `bson:"_id" json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID      string          `bson:"userId" json:"userId" gorm:"index;not null"`
	S3ObjectKey string          `bson:"s3ObjectKey" json:"-"` // internal use
	ContentType string          `bson:"contentType" json:"contentType"`
	Status      ReportStatus    `bson:"status" json:"status"`
	Analysis    *HealthAnalysis `bson:"analysis,omitempty" json:"analysis,omitempty" gorm:"serializer:json;type:text"`
	UploadedAt  time.Time       `bson:"uploadedAt" json:"uploadedAt"`
	UpdatedAt   time.Time       `bson:"updatedAt" json:"updatedAt"`
}

// UploadTicket is handed to the client to PUT a file straight to object storage.
type UploadTicket struct {
	UploadURL string    `json:"uploadUrl"`
	ObjectKey string    `json:"objectKey"`
	ExpiresAt time.Time `json:"expiresAt"`
}
