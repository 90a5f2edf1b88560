package mqtt

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	coremqtt "github.com/carelift/dispatch/core/mqtt"
	"github.com/carelift/dispatch/infra/logger"
)

// Config defines the connection parameters for the Paho MQTT client.
type Config struct {
	Broker   string `json:"broker"`
	ClientID string `json:"client_id"`
	Username string `json:"username"`
	Password string `json:"password"`

	// OfferTopicPrefix is joined with the driver id to form the topic the
	// driver app subscribes to.
	OfferTopicPrefix string `json:"offer_topic_prefix"`
	// AckTopic is where driver apps answer offers.
	AckTopic string `json:"ack_topic"`
	QoS      byte   `json:"qos"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.OfferTopicPrefix == "" {
		c.OfferTopicPrefix = "carelift/offers"
	}
	if c.AckTopic == "" {
		c.AckTopic = "carelift/offers/ack"
	}
}

// offerAck is the payload driver apps publish on the ack topic.
type offerAck struct {
	OfferID  string `json:"offer_id"`
	Accepted bool   `json:"accepted"`
}

type pahoClient interface {
	IsConnected() bool
	Connect() paho.Token
	Disconnect(quiesce uint)
	Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token
	Subscribe(topic string, qos byte, callback paho.MessageHandler) paho.Token
}

// PahoClient implements the OfferClient interface using Eclipse Paho.
type PahoClient struct {
	cli         pahoClient
	offerPrefix string
	ackTopic    string
	qos         byte

	mu       sync.Mutex
	ackChans map[string]chan bool
	logger   logger.Logger
}

var newMQTTClient = func(opts *paho.ClientOptions) pahoClient {
	return paho.NewClient(opts)
}

// NewPahoClient connects to the MQTT broker and subscribes to the ack topic.
func NewPahoClient(cfg Config) (*PahoClient, error) {
	cfg.SetDefaults()
	opts := paho.NewClientOptions().AddBroker(cfg.Broker).SetClientID(cfg.ClientID)
	opts.AutoReconnect = true
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
	}
	if cfg.Password != "" {
		opts.SetPassword(cfg.Password)
	}

	log := logger.New("mqtt_client")
	pc := &PahoClient{
		offerPrefix: cfg.OfferTopicPrefix,
		ackTopic:    cfg.AckTopic,
		qos:         cfg.QoS,
		ackChans:    make(map[string]chan bool),
		logger:      log,
	}
	opts.OnConnect = func(c paho.Client) {
		log.Infof("MQTT connected")
		if token := c.Subscribe(pc.ackTopic, pc.qos, pc.onAck); token.Wait() && token.Error() != nil {
			log.Errorf("subscribe error: %v", token.Error())
		}
	}
	opts.OnConnectionLost = func(_ paho.Client, err error) {
		log.Errorf("connection lost: %v", err)
	}

	c := newMQTTClient(opts)
	if token := c.Connect(); token.Wait() && token.Error() != nil {
		return nil, token.Error()
	}
	pc.cli = c
	return pc, nil
}

// SendOffer publishes the offer on the driver's topic and returns the offer id.
func (p *PahoClient) SendOffer(offer coremqtt.RideOffer) (string, error) {
	offer.OfferID = uuid.NewString()
	payload, err := json.Marshal(offer)
	if err != nil {
		return "", err
	}

	ch := make(chan bool, 1)
	p.mu.Lock()
	p.ackChans[offer.OfferID] = ch
	p.mu.Unlock()

	topic := fmt.Sprintf("%s/%s", p.offerPrefix, offer.DriverID)
	if token := p.cli.Publish(topic, p.qos, false, payload); token.Wait() && token.Error() != nil {
		p.dropAckChan(offer.OfferID)
		return "", token.Error()
	}
	return offer.OfferID, nil
}

// WaitForAck waits for the driver's answer or until the timeout expires.
func (p *PahoClient) WaitForAck(offerID string, timeout time.Duration) (bool, error) {
	p.mu.Lock()
	ch, ok := p.ackChans[offerID]
	p.mu.Unlock()
	if !ok {
		return false, fmt.Errorf("unknown offer %s", offerID)
	}
	defer p.dropAckChan(offerID)
	select {
	case accepted := <-ch:
		return accepted, nil
	case <-time.After(timeout):
		return false, coremqtt.ErrAckTimeout
	}
}

func (p *PahoClient) onAck(_ paho.Client, msg paho.Message) {
	var ack offerAck
	if err := json.Unmarshal(msg.Payload(), &ack); err != nil {
		p.logger.Warnf("malformed ack payload: %v", err)
		return
	}
	p.mu.Lock()
	ch, ok := p.ackChans[ack.OfferID]
	p.mu.Unlock()
	if !ok {
		return
	}
	select {
	case ch <- ack.Accepted:
	default:
	}
}

func (p *PahoClient) dropAckChan(offerID string) {
	p.mu.Lock()
	delete(p.ackChans, offerID)
	p.mu.Unlock()
}

// Close disconnects from the broker.
func (p *PahoClient) Close() error {
	p.cli.Disconnect(250)
	return nil
}
