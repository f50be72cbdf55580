package ports

// EventBus diffuse les changements (ex: settings.updated) aux clients SSE.
// Subscribe sans topic reçoit tout.
type EventBus interface {
	Publish(topic string, payload []byte)
	Subscribe(topics ...string) (ch <-chan Event, cancel func())
}

type Event struct {
	Topic   string
	Payload []byte
}

const TopicSettingsUpdated = "settings.updated"
