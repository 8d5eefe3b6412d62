// internal/model/certificate.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// Certificate はコース修了証を表します。
// (user_id, course_id) は一意で、コース進捗が100%に到達した時に一度だけ作成される。
// 取り消しの仕組みは存在しない。
type Certificate struct {
	CertificateID uuid.UUID `gorm:"type:uuid;primaryKey" json:"certificate_id"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;index:idx_user_course_cert,unique" json:"-"`
	CourseID      uuid.UUID `gorm:"type:uuid;not null;index:idx_user_course_cert,unique" json:"course_id"`
	IssuedAt      time.Time `json:"issued_at"`

	Course *Course `gorm:"foreignKey:CourseID;references:CourseID" json:"course,omitempty"`
}

func (Certificate) TableName() string {
	return "certificates"
}
