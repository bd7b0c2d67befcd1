// Package console implements the interactive hospital menu and the text
// rendering shared with the replay commands.
package console

import (
	"context"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/ehr/ward/internal/domain/ward"
)

const (
	choiceAdmit = iota + 1
	choiceDischarge
	choiceList
	choiceTreat
	choiceExit
)

// Console drives a ward.Service from a line-oriented menu.
type Console struct {
	svc    *ward.Service
	prompt *Prompter
	p      *Printer
}

func New(svc *ward.Service, prompt *Prompter, p *Printer) *Console {
	return &Console{svc: svc, prompt: prompt, p: p}
}

// AskRooms asks for the room table size.
func AskRooms(prompt *Prompter) (int, error) {
	return prompt.IntAtLeast("Enter the total number of rooms in the hospital: ", 0)
}

// Run loops over the menu until Exit is chosen or input ends. Business
// rejections are printed and never end the session.
func (c *Console) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		c.p.Menu()
		line, err := c.prompt.Line("Enter your choice: ")
		if errors.Is(err, io.EOF) {
			c.p.Goodbye()
			return nil
		}
		if err != nil {
			return err
		}

		choice, convErr := strconv.Atoi(strings.TrimSpace(line))
		if convErr != nil {
			choice = 0
		}

		switch choice {
		case choiceAdmit:
			err = c.admit(ctx)
		case choiceDischarge:
			err = c.discharge(ctx)
		case choiceList:
			c.p.Records(c.svc.ListRecords(ctx))
		case choiceTreat:
			c.treat(ctx)
		case choiceExit:
			c.p.Goodbye()
			return nil
		default:
			c.p.InvalidChoice()
		}

		if errors.Is(err, io.EOF) {
			c.p.Goodbye()
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (c *Console) admit(ctx context.Context) error {
	id, err := c.prompt.Int("Enter patient ID: ")
	if err != nil {
		return err
	}
	name, err := c.prompt.Required("Enter patient name: ")
	if err != nil {
		return err
	}
	age, err := c.prompt.IntAtLeast("Enter patient age: ", 0)
	if err != nil {
		return err
	}
	cond, err := c.prompt.Condition("Enter condition (Critical/Stable): ")
	if err != nil {
		return err
	}
	date, err := c.prompt.Line("Enter admission date (DD-MM-YYYY): ")
	if err != nil {
		return err
	}

	p, err := c.svc.Admit(ctx, ward.Patient{
		ID:            id,
		Name:          name,
		Age:           age,
		Condition:     cond,
		AdmissionDate: strings.TrimSpace(date),
	})
	switch {
	case errors.Is(err, ward.ErrNoRoomsAvailable):
		c.p.NoRooms()
	case err != nil:
		c.p.Rejected(err)
	default:
		c.p.Admitted(p)
	}
	return nil
}

func (c *Console) discharge(ctx context.Context) error {
	id, err := c.prompt.Int("Enter patient ID to discharge: ")
	if err != nil {
		return err
	}

	p, err := c.svc.Discharge(ctx, id)
	switch {
	case errors.Is(err, ward.ErrPatientNotFound):
		c.p.NotFound(id)
	case err != nil:
		c.p.Rejected(err)
	default:
		c.p.Discharged(p)
	}
	return nil
}

func (c *Console) treat(ctx context.Context) {
	p, err := c.svc.TreatNextCritical(ctx)
	if err != nil {
		c.p.NoCritical()
		return
	}
	c.p.Treating(p)
}
