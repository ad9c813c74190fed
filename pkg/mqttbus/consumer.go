package mqttbus

import (
	"context"
	"log"
	"strings"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// IConsumer subscribes to a topic and hands messages to a handler. The type
// parameter documents the payload the handler is expected to decode.
type IConsumer[T any] interface {
	ConsumeMessage(ctx context.Context)
	SetHandler(handler func(topic string, message mqtt.Message) error)
}

// Consumer subscribes to a single topic filter on a shared MQTT client.
type Consumer struct {
	client  mqtt.Client
	topic   string
	handler func(topic string, message mqtt.Message) error
}

func NewConsumer(client mqtt.Client, topic string, handler func(topic string, message mqtt.Message) error) *Consumer {
	return &Consumer{client: client, topic: topic, handler: handler}
}

func (c *Consumer) SetHandler(handler func(topic string, message mqtt.Message) error) {
	c.handler = handler
}

// qosFor upgrades the planner's request and result topics to at-least-once;
// everything else rides QoS 0.
func qosFor(topic string) byte {
	t := strings.TrimSpace(topic)
	if strings.HasPrefix(t, "schedule/request") ||
		strings.HasPrefix(t, "event/schedulePlanned") {
		return 1
	}
	return 0
}

// ConsumeMessage subscribes and blocks until ctx is cancelled.
func (c *Consumer) ConsumeMessage(ctx context.Context) {
	token := c.client.Subscribe(c.topic, qosFor(c.topic), func(_ mqtt.Client, message mqtt.Message) {
		if c.handler == nil {
			log.Printf("mqttbus: no handler for topic %s", c.topic)
			return
		}
		if err := c.handler(c.topic, message); err != nil {
			log.Printf("mqttbus: handler error on %s: %v", c.topic, err)
		}
	})
	if token.Wait() && token.Error() != nil {
		log.Printf("mqttbus: subscribe to %s failed: %v", c.topic, token.Error())
		return
	}
	log.Printf("mqttbus: subscribed to %s", c.topic)

	<-ctx.Done()

	unsub := c.client.Unsubscribe(c.topic)
	unsub.Wait()
}
