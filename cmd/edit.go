package cmd

import (
	"errors"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/icicle-admin/internal/form"
	"github.com/Tiliavir/icicle-admin/internal/model"
	"github.com/Tiliavir/icicle-admin/internal/timecalc"
	"github.com/Tiliavir/icicle-admin/internal/view"
)

// entryFlags are the field flags shared by create, edit and patch.
type entryFlags struct {
	date    string
	minutes int
	task    string
	user    int64
}

func (f *entryFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.date, "date", "", "Day worked, YYYY-MM-DD")
	cmd.Flags().IntVar(&f.minutes, "minutes", 0, "Minutes worked")
	cmd.Flags().StringVar(&f.task, "task", "", "Task name")
	cmd.Flags().Int64Var(&f.user, "user", 0, "Assigned user id (0 clears the assignment)")
}

// apply sets the controls of g for every flag given on the command line.
// A user id must be one of users.
func (f *entryFlags) apply(cmd *cobra.Command, g *form.Group, users []model.User) error {
	flags := cmd.Flags()
	if flags.Changed("date") {
		d, err := timecalc.ParseDate(f.date)
		if err != nil {
			return err
		}
		if err := g.Date.Set(&d); err != nil {
			return err
		}
	}
	if flags.Changed("minutes") {
		if err := g.MinutesWorked.Set(model.Ptr(f.minutes)); err != nil {
			return err
		}
	}
	if flags.Changed("task") {
		if err := g.TaskName.Set(model.Ptr(f.task)); err != nil {
			return err
		}
	}
	if flags.Changed("user") {
		var ref *model.UserRef
		if f.user != 0 {
			i := slices.IndexFunc(users, func(u model.User) bool { return u.ID == f.user })
			if i < 0 {
				return fmt.Errorf("unknown user %d", f.user)
			}
			ref = model.Ptr(users[i].Ref())
		}
		if err := g.User.Set(ref); err != nil {
			return err
		}
	}
	return nil
}

// patch builds a partial update of entry id from the flags given.
func (f *entryFlags) patch(cmd *cobra.Command, id int64) (model.TimeEntry, error) {
	flags := cmd.Flags()
	p := model.TimeEntry{ID: id}
	if flags.Changed("date") {
		d, err := timecalc.ParseDate(f.date)
		if err != nil {
			return p, err
		}
		p.Date = &d
	}
	if flags.Changed("minutes") {
		if f.minutes < 0 {
			return p, errors.New("minutes must not be negative")
		}
		p.MinutesWorked = model.Ptr(f.minutes)
	}
	if flags.Changed("task") {
		p.TaskName = model.Ptr(f.task)
	}
	if flags.Changed("user") {
		if f.user == 0 {
			return p, errors.New("patch cannot clear the user; use edit")
		}
		p.User = &model.UserRef{ID: f.user}
	}
	if p == (model.TimeEntry{ID: id}) {
		return p, errors.New("nothing to change: give at least one of --date, --minutes, --task, --user")
	}
	return p, nil
}

var (
	createFlags entryFlags
	editFlags   entryFlags
	patchFlags  entryFlags
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a time entry",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runEditor(cmd, nil, &createFlags)
	},
}

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Replace a time entry; fields not given keep their current value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runEditor(cmd, resolveEntry(cmd, args[0]), &editFlags)
	},
}

var patchCmd = &cobra.Command{
	Use:   "patch <id>",
	Short: "Partially update a time entry; only the given fields are sent",
	Args:  cobra.ExactArgs(1),
	RunE:  runPatch,
}

func init() {
	createFlags.register(createCmd)
	editFlags.register(editCmd)
	patchFlags.register(patchCmd)
}

// runEditor edits entry, or a new one when entry is nil, and saves it.
func runEditor(cmd *cobra.Command, entry *model.TimeEntry, flags *entryFlags) error {
	ctx := cmd.Context()
	ed := view.NewEditor(api, api)
	if err := ed.Load(ctx, entry); err != nil {
		failAPI(err)
	}
	if err := flags.apply(cmd, ed.Form, ed.UserOptions); err != nil {
		fail(1, err)
	}

	saved, err := ed.Save(ctx)
	if errors.Is(err, form.ErrInvalid) {
		fail(1, err)
	}
	if err != nil {
		failAPI(err)
	}

	verb := "Updated"
	if entry == nil {
		verb = "Created"
	}
	fmt.Printf("%s time entry %d.\n", verb, saved.ID)
	printEntry(cmd.OutOrStdout(), *saved)
	return nil
}

func runPatch(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		fail(1, err)
	}
	p, err := patchFlags.patch(cmd, id)
	if err != nil {
		fail(1, err)
	}

	res, err := api.PartialUpdate(cmd.Context(), p)
	if err != nil {
		failAPI(err)
	}
	fmt.Printf("Patched time entry %d.\n", id)
	if res.Body != nil {
		printEntry(cmd.OutOrStdout(), *res.Body)
	}
	return nil
}
