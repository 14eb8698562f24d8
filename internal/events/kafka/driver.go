package kafka

import (
	"encoding/json"
	"fmt"

	"github.com/IBM/sarama"

	"taskrt/internal/events"
)

type Config struct {
	Brokers []string `koanf:"brokers"`
	Topic   string   `koanf:"topic"`
	Acks    int16    `koanf:"required_acks"` // 0,1,-1
	Version string   `koanf:"version"`
}

type driver struct {
	cfg Config
	p   sarama.SyncProducer

	// newProducer is swapped in tests.
	newProducer func([]string, *sarama.Config) (sarama.SyncProducer, error)
}

func (d *driver) Configure(raw any) error {
	cfg, ok := raw.(Config)
	if !ok {
		return fmt.Errorf("kafka-events: expected Config, got %T", raw)
	}
	if cfg.Topic == "" {
		return fmt.Errorf("kafka-events: topic is required")
	}
	d.cfg = cfg

	sc := sarama.NewConfig()
	sc.Producer.RequiredAcks = sarama.RequiredAcks(cfg.Acks)
	sc.Producer.Return.Successes = true
	if cfg.Version != "" {
		ver, err := sarama.ParseKafkaVersion(cfg.Version)
		if err != nil {
			return err
		}
		sc.Version = ver
	}
	if d.newProducer == nil {
		d.newProducer = sarama.NewSyncProducer
	}
	var err error
	d.p, err = d.newProducer(cfg.Brokers, sc)
	return err
}

// Publish keys each message by plugin name so a plugin's events stay ordered
// within one partition.
func (d *driver) Publish(e events.Event) error {
	if d.p == nil {
		return fmt.Errorf("kafka-events: not configured")
	}
	val, err := json.Marshal(e)
	if err != nil {
		return err
	}
	_, _, err = d.p.SendMessage(&sarama.ProducerMessage{
		Topic: d.cfg.Topic,
		Key:   sarama.StringEncoder(e.Model + "/" + e.Plugin),
		Value: sarama.ByteEncoder(val),
	})
	return err
}

func (d *driver) Close() error {
	if d.p == nil {
		return nil
	}
	err := d.p.Close()
	d.p = nil
	return err
}

func init() {
	events.Register("kafka", func() events.Publisher { return &driver{} })
}
