package notification

import (
	"fmt"

	"github.com/olahol/melody"
)

type Service interface {
	SendMessage(message string) error
}

type MelodyService struct {
	m *melody.Melody
}

func NewMelodyService(m *melody.Melody) *MelodyService {
	return &MelodyService{m: m}
}

func (s *MelodyService) SendMessage(message string) error {
	if s.m == nil {
		return fmt.Errorf("melody instance is nil")
	}
	return s.m.Broadcast([]byte(message))
}

type MessageBuilder struct {
	socioID   uint
	beneficio string
	descuento float64
}

func NewMessageBuilder(socioID uint, beneficio string, descuento float64) *MessageBuilder {
	return &MessageBuilder{
		socioID:   socioID,
		beneficio: beneficio,
		descuento: descuento,
	}
}

func (b *MessageBuilder) Build() string {
	if b.beneficio == "" {
		return fmt.Sprintf("🔔 El socio %d registró una visita.", b.socioID)
	}
	return fmt.Sprintf("🔔 El socio %d canjeó %q con un descuento de %.2f.", b.socioID, b.beneficio, b.descuento)
}
