package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/vncsmyrnk/slotpoll/internal/core/ports"
)

type OrganizerCreateCmd struct {
	Username string `arg:"" help:"Login name of the new organizer."`
	Password string `help:"Initial password." env:"SLOTPOLL_ORGANIZER_PASSWORD" required:""`
}

func (c *OrganizerCreateCmd) Run(ctx *Context) error {
	organizer, err := ctx.App.Organizers.Create(context.Background(), ports.CreateOrganizerInput{
		Username: c.Username,
		Password: c.Password,
	})
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(ctx.Out, "created organizer %s (%s)\n", organizer.Username, organizer.ID)
	return err
}

type OrganizerListCmd struct{}

func (c *OrganizerListCmd) Run(ctx *Context) error {
	organizers, err := ctx.App.Organizers.List(context.Background())
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(organizers))
	for _, o := range organizers {
		rows = append(rows, []string{o.ID, o.Username, o.CreatedAt.Format(time.RFC3339)})
	}
	return ctx.printTable([]string{"ID", "USERNAME", "CREATED"}, rows)
}

type OrganizerDeleteCmd struct {
	ID string `arg:"" help:"Organizer id."`
}

func (c *OrganizerDeleteCmd) Run(ctx *Context) error {
	if err := ctx.App.Organizers.Delete(context.Background(), c.ID); err != nil {
		return err
	}
	_, err := fmt.Fprintf(ctx.Out, "deleted organizer %s\n", c.ID)
	return err
}
