package services

import (
	"os"
	"path/filepath"

	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/job-tracker/internal/events"
	log "github.com/sirupsen/logrus"
)

// DigestDelivery is the local-only delivery sink: it listens for generated
// digests and writes their plain-text rendering into the outbox directory.
type DigestDelivery struct {
	bus       EventBus.Bus
	outboxDir string
}

func NewDigestDelivery(bus EventBus.Bus, outboxDir string) (*DigestDelivery, error) {

	if err := os.MkdirAll(outboxDir, 0755); err != nil {
		return nil, err
	}

	d := &DigestDelivery{bus: bus, outboxDir: outboxDir}
	if err := bus.Subscribe(events.DigestGeneratedTopic, d.onDigestGenerated); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *DigestDelivery) Stop() {
	_ = d.bus.Unsubscribe(events.DigestGeneratedTopic, d.onDigestGenerated)
}

func (d *DigestDelivery) onDigestGenerated(event events.DigestGenerated) {

	path := filepath.Join(d.outboxDir, "digest-"+event.Digest.Date+".txt")
	if err := os.WriteFile(path, []byte(RenderText(event.Digest)), 0644); err != nil {
		log.Errorf("failed to write digest to outbox: %v", err)
		return
	}
	log.Infof("delivered digest for %v to %v", event.Digest.Date, path)
}
