package events

import "github.com/maxaizer/job-tracker/internal/domain/models"

var DigestGeneratedTopic = "DigestGeneratedEvent"

type DigestGenerated struct {
	Digest models.Digest
}
