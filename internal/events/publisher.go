package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"orderpilot/internal/order"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	Exchange = "orders_topic"
	Queue    = "order_created"
)

// OrderCreatedMessage is the body published for every new order.
type OrderCreatedMessage struct {
	OrderID       string               `json:"order_id"`
	RestaurantID  string               `json:"restaurant_id"`
	Source        string               `json:"source"`
	Type          string               `json:"type"`
	Status        string               `json:"status"`
	CustomerName  string               `json:"customer_name,omitempty"`
	CustomerPhone string               `json:"customer_phone,omitempty"`
	TotalAmount   float64              `json:"total_amount"`
	Items         []order.ResolvedLine `json:"items"`
	CreatedAt     time.Time            `json:"created_at"`
}

// RoutingKey is orders.created.<source>.<type>.
func RoutingKey(o *order.Order) string {
	return fmt.Sprintf("orders.created.%s.%s", o.Source, o.Type)
}

func NewOrderCreatedMessage(o *order.Order) OrderCreatedMessage {
	return OrderCreatedMessage{
		OrderID:       o.ID,
		RestaurantID:  o.RestaurantID,
		Source:        o.Source,
		Type:          o.Type,
		Status:        o.Status,
		CustomerName:  o.CustomerName,
		CustomerPhone: o.CustomerPhone,
		TotalAmount:   o.TotalAmount,
		Items:         o.Lines,
		CreatedAt:     o.CreatedAt,
	}
}

type AMQPPublisher struct {
	conn *amqp.Connection

	mu      sync.Mutex
	channel *amqp.Channel
}

func Dial(url string) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	p, err := NewAMQPPublisher(conn)
	if err != nil {
		conn.Close()
		return nil, err
	}
	return p, nil
}

func NewAMQPPublisher(conn *amqp.Connection) (*AMQPPublisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}

	err = ch.ExchangeDeclare(
		Exchange,
		"topic",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, err
	}

	q, err := ch.QueueDeclare(
		Queue,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, err
	}

	if err := ch.QueueBind(q.Name, "orders.created.#", Exchange, false, nil); err != nil {
		return nil, err
	}

	return &AMQPPublisher{conn: conn, channel: ch}, nil
}

// OrderCreated implements order.Publisher.
func (p *AMQPPublisher) OrderCreated(ctx context.Context, o *order.Order) error {
	body, err := json.Marshal(NewOrderCreatedMessage(o))
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// amqp channels are not safe for concurrent publishing
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.channel.PublishWithContext(
		ctx,
		Exchange,
		RoutingKey(o),
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    o.ID,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		})
}

func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.channel.Close(); err != nil {
		p.conn.Close()
		return err
	}
	return p.conn.Close()
}
