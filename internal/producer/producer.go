package producer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/nhle/web3hub/internal/model"
	"github.com/nhle/web3hub/internal/notify"
)

// ErrInvalidDraft is returned when a draft is missing required fields.
var ErrInvalidDraft = errors.New("invalid notification draft")

// Draft holds the admin form input. Only presence is checked; amount and
// end date are free text. An empty type or priority is left for the
// repository to default, but a value must be a known one.
type Draft struct {
	Type        model.Category `json:"type" validate:"omitempty,oneof=governance security airdrop upgrade"`
	Title       string         `json:"title" validate:"required"`
	Description string         `json:"description" validate:"required"`
	Priority    model.Priority `json:"priority" validate:"omitempty,oneof=high medium low"`
	ActionURL   string         `json:"actionUrl"`

	AirdropStatus model.AirdropStatus `json:"airdropStatus" validate:"required_if=Type airdrop"`
	Amount        string              `json:"amount" validate:"required_if=Type airdrop"`
	EndDate       string              `json:"endDate" validate:"required_if=Type airdrop"`
}

// DefaultDraft returns the values the form starts from and resets to.
func DefaultDraft() Draft {
	return Draft{
		Type:          model.CategoryGovernance,
		Priority:      model.PriorityMedium,
		AirdropStatus: model.AirdropActive,
	}
}

var validate = validator.New()

// Validate checks that every required field is present.
func (d Draft) Validate() error {
	if err := validate.Struct(d); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fe.Field())
			}
			return fmt.Errorf("%w: missing or invalid %s: %w", ErrInvalidDraft, strings.Join(fields, ", "), err)
		}
		return fmt.Errorf("%w: %w", ErrInvalidDraft, err)
	}
	return nil
}

// Notification converts the draft into a partial record. Airdrop fields
// are carried only for airdrop drafts.
func (d Draft) Notification() model.Notification {
	n := model.Notification{
		Type:        d.Type,
		Title:       d.Title,
		Description: d.Description,
		Priority:    d.Priority,
		ActionURL:   d.ActionURL,
	}
	if d.Type == model.CategoryAirdrop {
		n.Airdrop = &model.AirdropDetails{
			Status:  d.AirdropStatus,
			Amount:  d.Amount,
			EndDate: d.EndDate,
		}
	}
	return n
}

// Producer validates drafts and appends them to the repository.
type Producer struct {
	repo *notify.Repository
}

// New creates a Producer backed by repo.
func New(repo *notify.Repository) *Producer {
	return &Producer{repo: repo}
}

// Submit validates d and appends it. A rejected draft is never appended.
// When persisting fails the record is still in memory and is returned
// along with the error.
func (p *Producer) Submit(ctx context.Context, d Draft) (model.Notification, error) {
	if err := d.Validate(); err != nil {
		return model.Notification{}, err
	}
	return p.repo.Append(ctx, d.Notification())
}

// Required is a huh-compatible validator rejecting empty input.
func Required(label string) func(string) error {
	return func(s string) error {
		if s == "" {
			return fmt.Errorf("%s is required", label)
		}
		return nil
	}
}
