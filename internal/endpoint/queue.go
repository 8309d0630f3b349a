package endpoint

import (
	"net/url"
	"strconv"
	"strings"
)

// QueuePosition is where a consumer starts reading.
type QueuePosition string

const (
	QueuePositionStart   QueuePosition = "start"
	QueuePositionEnd     QueuePosition = "end"
	QueuePositionCurrent QueuePosition = "current"
)

// QueueQuery holds the read parameters of a queue.
type QueueQuery struct {
	Consumer     string
	LastID       string
	Time         int64
	Prev         int
	Next         int
	Limit        int
	Position     QueuePosition
	Update       bool
	Synchronized bool
}

func (q QueueQuery) values() url.Values {
	values := url.Values{}
	if q.Consumer != "" {
		values.Set("consumer", q.Consumer)
	}
	if q.LastID != "" {
		values.Set("last", q.LastID)
	}
	if q.Time > 0 {
		values.Set("time", strconv.FormatInt(q.Time, 10))
	}
	if q.Prev > 0 {
		values.Set("prev", strconv.Itoa(q.Prev))
	}
	if q.Next > 0 {
		values.Set("next", strconv.Itoa(q.Next))
	}
	if q.Limit > 0 {
		values.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Position != "" {
		values.Set("pos", string(q.Position))
	}
	if q.Update {
		values.Set("update", "true")
	}
	if q.Synchronized {
		values.Set("synchronized", "true")
	}
	return values
}

// NormalizeQueuePath drops surrounding slashes and empty segments. Nested
// queues keep their inner separators.
func NormalizeQueuePath(path string) string {
	parts := strings.Split(path, "/")
	kept := parts[:0]
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			kept = append(kept, part)
		}
	}
	return strings.Join(kept, "/")
}

func (b Builder) queue(path string, extra ...string) string {
	segments := append([]string{"queues"}, strings.Split(NormalizeQueuePath(path), "/")...)
	return b.Path(append(segments, extra...)...)
}

func (b Builder) Queue(path string) string { return b.queue(path) }

func (b Builder) QueueRead(path string, q QueueQuery) string {
	return withValues(b.queue(path), q.values())
}

func (b Builder) QueueSubscriber(path, subscriberPath string) string {
	return b.queue(path, append([]string{"subscribers"}, strings.Split(NormalizeQueuePath(subscriberPath), "/")...)...)
}
