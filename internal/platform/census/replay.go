package census

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/ehr/ward/internal/domain/ward"
)

// Outcome is the result of one replayed step. Err holds business
// rejections such as ward.ErrNoRoomsAvailable.
type Outcome struct {
	Step    int
	Action  string
	Patient ward.Patient
	ID      int
	Err     error
}

type Result struct {
	Applied  int
	Rejected int
}

// Apply runs every step of the plan in order. Rejections are reported
// through observe and counted; they never stop the replay.
func Apply(ctx context.Context, svc *ward.Service, p *Plan, observe func(Outcome)) (Result, error) {
	var res Result
	if err := p.Validate(); err != nil {
		return res, err
	}
	logger := zerolog.Ctx(ctx)

	for i, s := range p.Steps {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		o := Outcome{Step: i + 1, Action: s.Action()}
		switch o.Action {
		case ActionAdmit:
			cond, err := ward.ParseCondition(s.Admit.Condition)
			if err != nil {
				return res, fmt.Errorf("step %d: %w", o.Step, err)
			}
			o.ID = s.Admit.ID
			o.Patient, o.Err = svc.Admit(ctx, ward.Patient{
				ID:            s.Admit.ID,
				Name:          s.Admit.Name,
				Age:           s.Admit.Age,
				Condition:     cond,
				AdmissionDate: s.Admit.Date,
			})
		case ActionDischarge:
			o.ID = *s.Discharge
			o.Patient, o.Err = svc.Discharge(ctx, o.ID)
		case ActionTreat:
			o.Patient, o.Err = svc.TreatNextCritical(ctx)
			o.ID = o.Patient.ID
		}

		if o.Err != nil {
			res.Rejected++
		} else {
			res.Applied++
		}
		if observe != nil {
			observe(o)
		}
	}

	logger.Info().
		Int("steps", len(p.Steps)).
		Int("applied", res.Applied).
		Int("rejected", res.Rejected).
		Msg("census replay finished")
	return res, nil
}
