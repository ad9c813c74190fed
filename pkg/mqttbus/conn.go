package mqttbus

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/cenkalti/backoff/v4"
	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// BrokerConfig describes the MQTT broker the planner talks to.
type BrokerConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	ClientID string
}

// Connect dials the broker, retrying with exponential backoff. The returned
// client is disconnected when ctx is cancelled.
func Connect(ctx context.Context, cfg *BrokerConfig) (mqtt.Client, error) {
	addr := fmt.Sprintf("tcp://%s:%d", cfg.Host, cfg.Port)

	opts := mqtt.NewClientOptions()
	opts.AddBroker(addr)
	opts.SetUsername(cfg.User)
	opts.SetPassword(cfg.Password)
	opts.SetClientID(cfg.ClientID)
	opts.SetCleanSession(true)

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 10 * time.Second

	var client mqtt.Client
	err := backoff.Retry(func() error {
		client = mqtt.NewClient(opts)
		if token := client.Connect(); token.Wait() && token.Error() != nil {
			log.Printf("mqttbus: connect to %s failed: %v", addr, token.Error())
			return token.Error()
		}
		return nil
	}, backoff.WithMaxRetries(bo, 4))
	if err != nil {
		return nil, fmt.Errorf("mqttbus: no connection to %s after retries: %w", addr, err)
	}

	log.Printf("mqttbus: connected to %s", addr)

	go func() {
		<-ctx.Done()
		client.Disconnect(250)
		log.Println("mqttbus: connection closed")
	}()

	return client, nil
}

// Close disconnects the client if it is still connected.
func Close(client mqtt.Client) {
	if client.IsConnected() {
		client.Disconnect(250)
		log.Println("mqttbus: disconnected")
	}
}
