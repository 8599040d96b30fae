package notification

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/agendahub/agenda-api/internal/validators"
)

// Dispatcher entrega notificações em melhor esforço, fora do caminho
// da escrita. Dispatch nunca bloqueia e nenhuma falha de envio chega ao
// chamador: o resultado do agendamento não depende da notificação.
type Dispatcher struct {
	transport Transport
	log       *zap.Logger
	timeout   time.Duration

	queue chan Event
	done  chan struct{}
}

func NewDispatcher(transport Transport, log *zap.Logger, timeout time.Duration) *Dispatcher {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	d := &Dispatcher{
		transport: transport,
		log:       log,
		timeout:   timeout,
		queue:     make(chan Event, 100),
		done:      make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)

	for ev := range d.queue {
		d.deliver(ev)
	}
}

func (d *Dispatcher) deliver(ev Event) {
	// Cliente sem e-mail: pulamos em silêncio, não é erro.
	if ev.To == "" {
		return
	}
	if !validators.CanReceiveEmail(ev.To) {
		d.log.Debug("notification skipped, malformed address",
			zap.String("to", ev.To),
		)
		return
	}

	msg := Compose(ev)

	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	if err := d.transport.Send(ctx, msg); err != nil {
		d.log.Warn("notification delivery failed",
			zap.String("to", msg.To),
			zap.String("subject", msg.Subject),
			zap.Error(err),
		)
	}
}

// Dispatch enfileira o evento. Fila cheia descarta com log: a API
// nunca espera pela notificação.
func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
	default:
		d.log.Warn("notification queue full, dropping event",
			zap.String("to", ev.To),
		)
	}
}

// Close drena a fila e espera o worker terminar.
func (d *Dispatcher) Close() {
	close(d.queue)
	<-d.done
}
