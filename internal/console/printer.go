package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/ehr/ward/internal/domain/ward"
)

// Palette groups the colours used for console output.
type Palette struct {
	Success *color.Color
	Failure *color.Color
	Heading *color.Color
}

// NewPalette returns the default palette, or a colourless one when enabled
// is false.
func NewPalette(enabled bool) Palette {
	p := Palette{
		Success: color.New(color.FgGreen),
		Failure: color.New(color.FgRed),
		Heading: color.New(color.Bold, color.FgCyan),
	}
	if !enabled {
		for _, c := range []*color.Color{p.Success, p.Failure, p.Heading} {
			c.DisableColor()
		}
	}
	return p
}

const recordsRule = 61

// Printer renders registry outcomes as console text.
type Printer struct {
	out     io.Writer
	palette Palette
}

func NewPrinter(out io.Writer, palette Palette) *Printer {
	return &Printer{out: out, palette: palette}
}

func (p *Printer) Prompt(text string) {
	fmt.Fprint(p.out, text)
}

func (p *Printer) Menu() {
	p.palette.Heading.Fprintln(p.out, "\nHospital Management System")
	fmt.Fprintln(p.out, "1. Admit Patient")
	fmt.Fprintln(p.out, "2. Discharge Patient")
	fmt.Fprintln(p.out, "3. Display Patient Records")
	fmt.Fprintln(p.out, "4. Manage Critical Patients")
	fmt.Fprintln(p.out, "5. Exit")
}

func (p *Printer) Admitted(pt ward.Patient) {
	p.palette.Success.Fprintf(p.out, "Patient %s admitted successfully in room %d.\n", pt.Name, pt.Room)
}

func (p *Printer) NoRooms() {
	p.palette.Failure.Fprintln(p.out, "No rooms available! Please wait.")
}

func (p *Printer) Discharged(pt ward.Patient) {
	p.palette.Success.Fprintf(p.out, "Patient %s discharged successfully.\n", pt.Name)
}

func (p *Printer) NotFound(id int) {
	p.palette.Failure.Fprintf(p.out, "Patient with ID %d not found.\n", id)
}

func (p *Printer) Treating(pt ward.Patient) {
	p.palette.Success.Fprintf(p.out, "Treating critical patient: %s (ID: %d)\n", pt.Name, pt.ID)
}

func (p *Printer) NoCritical() {
	fmt.Fprintln(p.out, "No critical patients to manage.")
}

func (p *Printer) InvalidChoice() {
	p.palette.Failure.Fprintln(p.out, "Invalid choice! Please try again.")
}

func (p *Printer) InvalidNumber() {
	p.palette.Failure.Fprintln(p.out, "Invalid number, please try again.")
}

func (p *Printer) InvalidCondition() {
	p.palette.Failure.Fprintln(p.out, "Invalid condition, please enter Critical or Stable.")
}

func (p *Printer) Rejected(err error) {
	p.palette.Failure.Fprintf(p.out, "Request rejected: %v\n", err)
}

func (p *Printer) Goodbye() {
	fmt.Fprintln(p.out, "Exiting the system. Goodbye!")
}

// Records prints the record table in admission order.
func (p *Printer) Records(records []ward.Patient) {
	if len(records) == 0 {
		fmt.Fprintln(p.out, "No patient records available.")
		return
	}

	p.palette.Heading.Fprintf(p.out, "%-5s%-20s%-5s%-10s%-15s%s\n",
		"ID", "Name", "Age", "Condition", "Admission Date", "Room")
	fmt.Fprintln(p.out, strings.Repeat("-", recordsRule))
	for _, r := range records {
		fmt.Fprintf(p.out, "%-5d%-20s%-5d%-10s%-15s%d\n",
			r.ID, r.Name, r.Age, r.Condition, r.AdmissionDate, r.Room)
	}
}

func (p *Printer) Census(c ward.Census) {
	p.palette.Heading.Fprintln(p.out, "Census")
	fmt.Fprintf(p.out, "Rooms: %d total, %d occupied, %d free\n", c.TotalRooms, c.OccupiedRooms, c.FreeRooms)
	fmt.Fprintf(p.out, "Records: %d | Critical waiting: %d | Stable waiting: %d\n", c.Records, c.Critical, c.Stable)
}
