package notify

import (
	"context"
	"fmt"
	"strings"

	"atelier-rental-backend/internal/domain"
	"atelier-rental-backend/internal/logger"
	"atelier-rental-backend/internal/repository"
)

// Publisher is the push-relay side of the dispatcher, split out so tests
// can stand in for the real relay.
type Publisher interface {
	Publish(ctx context.Context, topic, title, message string) error
}

// TextSender is the phone-gateway fallback channel.
type TextSender interface {
	Send(ctx context.Context, phone, message string) error
}

// EmailSender is the optional staff e-mail channel.
type EmailSender interface {
	Send(ctx context.Context, to, toName, subject, plainText string) error
}

// Dispatcher fans staff alerts out to the configured channels. Targets
// (topic, phone, e-mail) come from the settings table at send time, so
// edits in the admin UI take effect without a restart. Delivery failures
// are logged and never bubble up into the mutation that triggered them.
type Dispatcher struct {
	settings repository.SettingsRepository
	relay    Publisher
	phone    TextSender
	email    EmailSender
}

func NewDispatcher(settings repository.SettingsRepository, relay Publisher, phone TextSender, email EmailSender) *Dispatcher {
	return &Dispatcher{
		settings: settings,
		relay:    relay,
		phone:    phone,
		email:    email,
	}
}

// NotifyNewRental alerts staff about a freshly created rental. The push
// relay is tried first; the phone gateway only fires when the relay
// fails. E-mail, when configured, is sent in addition rather than as a
// fallback.
func (d *Dispatcher) NotifyNewRental(ctx context.Context, rental *domain.Rental, customerName string) {
	title := "Novo aluguel " + rental.ContractNumber
	message := fmt.Sprintf("%s: evento %s, retirada %s, devolução %s (%d itens)",
		customerName, rental.EventDate, rental.StartDate, rental.EndDate, len(rental.Items))
	d.dispatch(ctx, title, message)
}

// NotifyOverdueRentals reports the nightly overdue sweep.
func (d *Dispatcher) NotifyOverdueRentals(ctx context.Context, rentals []domain.Rental) {
	if len(rentals) == 0 {
		return
	}
	var lines []string
	for _, rt := range rentals {
		lines = append(lines, fmt.Sprintf("%s vence em %s", rt.ContractNumber, rt.EndDate))
	}
	title := fmt.Sprintf("%d aluguéis em atraso", len(rentals))
	d.dispatch(ctx, title, strings.Join(lines, "\n"))
}

func (d *Dispatcher) dispatch(ctx context.Context, title, message string) {
	settings, err := d.settings.GetAll(ctx)
	if err != nil {
		logger.Error("Failed to load notification settings", "error", err)
		return
	}

	logger.ExternalServiceCall("push-relay", "publish", "title", title)
	relayErr := d.relay.Publish(ctx, settings[domain.SettingNotifyTopic], title, message)
	logger.ExternalServiceResult("push-relay", "publish", relayErr)

	if relayErr != nil {
		logger.ExternalServiceCall("phone-gateway", "send")
		phoneErr := d.phone.Send(ctx, settings[domain.SettingNotifyPhone], title+"\n"+message)
		logger.ExternalServiceResult("phone-gateway", "send", phoneErr)
	}

	if to := settings[domain.SettingNotifyEmail]; to != "" && d.email != nil {
		if err := d.email.Send(ctx, to, "Equipe", title, message); err != nil {
			logger.Error("Staff e-mail delivery failed", "error", err)
		}
	}
}
