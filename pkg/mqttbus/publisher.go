package mqttbus

import (
	"fmt"
	"log"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// IPublisher is what the planner needs to emit events.
type IPublisher interface {
	PublishMessage(topic string, payload string) error
	PublishToQos(topic string, qos byte, retained bool, payload string) error
	Close()
}

// Publisher publishes planner events over a shared MQTT client.
type Publisher struct {
	client mqtt.Client
}

func NewPublisher(client mqtt.Client) *Publisher {
	return &Publisher{client: client}
}

// PublishMessage publishes at-most-once; schedule results should instead go
// through PublishToQos with QoS 1 so a flaky link cannot drop them.
func (p *Publisher) PublishMessage(topic string, payload string) error {
	return p.PublishToQos(topic, 0, false, payload)
}

func (p *Publisher) PublishToQos(topic string, qos byte, retained bool, payload string) error {
	token := p.client.Publish(topic, qos, retained, payload)
	token.Wait()
	if token.Error() != nil {
		return fmt.Errorf("publish to %s: %w", topic, token.Error())
	}
	return nil
}

func (p *Publisher) Close() {
	if p.client.IsConnected() {
		p.client.Disconnect(250)
		log.Println("mqttbus: publisher disconnected")
	}
}
