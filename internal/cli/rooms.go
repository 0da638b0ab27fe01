package cli

import (
	"fmt"
	"strconv"

	"dormhub/internal/client"
	"dormhub/internal/client/viewmodel"

	"github.com/spf13/cobra"
)

// RoomsCmd 房间管理
func RoomsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rooms",
		Short: "Manage rooms",
	}
	cmd.AddCommand(
		roomsListCmd(app),
		roomsAddCmd(app),
		roomsEditCmd(app),
		roomsDeleteCmd(app),
		roomsStatusCmd(app),
		roomsVacantCmd(app),
	)
	return cmd
}

func roomViewModel(app *App, confirmedOnly bool) (*viewmodel.RoomViewModel, error) {
	api, store, err := app.LoggedIn()
	if err != nil {
		return nil, err
	}
	return viewmodel.NewRoomViewModel(api, store, viewmodel.RoomOptions{ConfirmedDeletesOnly: confirmedOnly}), nil
}

func roomsListCmd(app *App) *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List rooms",
		RunE: func(cmd *cobra.Command, args []string) error {
			vm, err := roomViewModel(app, false)
			if err != nil {
				return err
			}
			if err := vm.Load(cmd.Context()); err != nil {
				return Explain(err)
			}
			rooms := vm.Rooms()
			if status != "" {
				filtered := rooms[:0]
				for _, r := range rooms {
					if r.Status == status {
						filtered = append(filtered, r)
					}
				}
				rooms = filtered
			}
			return printRooms(app.Out, rooms)
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "only show rooms with this status")
	return cmd
}

// roomFlags 新增/编辑共用的字段参数
type roomFlags struct {
	number      string
	roomType    string
	price       float64
	floor       string
	description string
	status      string
}

func (f *roomFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.number, "number", "", "room number")
	cmd.Flags().StringVar(&f.roomType, "type", "", "room type (single, double, suite)")
	cmd.Flags().Float64Var(&f.price, "price", 0, "monthly price")
	cmd.Flags().StringVar(&f.floor, "floor", "", "floor")
	cmd.Flags().StringVar(&f.description, "description", "", "description")
	cmd.Flags().StringVar(&f.status, "status", "", "status (vacant, occupied, maintenance)")
}

// apply 只覆盖显式给出的参数
func (f *roomFlags) apply(cmd *cobra.Command, fields *client.RoomFields) {
	flags := cmd.Flags()
	if flags.Changed("number") {
		fields.RoomNumber = f.number
	}
	if flags.Changed("type") {
		fields.RoomType = f.roomType
	}
	if flags.Changed("price") {
		p := f.price
		fields.Price = &p
	}
	if flags.Changed("floor") {
		fl := f.floor
		fields.Floor = &fl
	}
	if flags.Changed("description") {
		d := f.description
		fields.Description = &d
	}
	if flags.Changed("status") {
		fields.Status = f.status
	}
}

func roomsAddCmd(app *App) *cobra.Command {
	var f roomFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a room",
		RunE: func(cmd *cobra.Command, args []string) error {
			vm, err := roomViewModel(app, false)
			if err != nil {
				return err
			}
			return saveRoom(cmd, app, vm, 0, &f)
		},
	}

	f.bind(cmd)
	return cmd
}

func roomsEditCmd(app *App) *cobra.Command {
	var f roomFlags

	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Edit a room; omitted fields keep their current value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseRoomID(args[0])
			if err != nil {
				return err
			}
			vm, err := roomViewModel(app, false)
			if err != nil {
				return err
			}
			if err := vm.Load(cmd.Context()); err != nil {
				return Explain(err)
			}
			return saveRoom(cmd, app, vm, id, &f)
		},
	}

	f.bind(cmd)
	return cmd
}

func saveRoom(cmd *cobra.Command, app *App, vm *viewmodel.RoomViewModel, id uint64, f *roomFlags) error {
	if err := vm.OpenEditor(id); err != nil {
		return err
	}
	form := vm.Form()
	f.apply(cmd, &form)
	if err := vm.SetForm(form); err != nil {
		return err
	}

	room, err := vm.Save(cmd.Context())
	if err != nil {
		return Explain(err)
	}
	fmt.Fprintf(app.Out, "Saved room %s (id %d, %s)\n", room.RoomNumber, room.ID, room.Status)
	return nil
}

func roomsDeleteCmd(app *App) *cobra.Command {
	var confirmedOnly bool

	cmd := &cobra.Command{
		Use:   "delete ID [ID...]",
		Short: "Delete one or more rooms",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := make([]uint64, 0, len(args))
			for _, a := range args {
				id, err := parseRoomID(a)
				if err != nil {
					return err
				}
				ids = append(ids, id)
			}

			vm, err := roomViewModel(app, confirmedOnly)
			if err != nil {
				return err
			}
			if err := vm.Load(cmd.Context()); err != nil {
				return Explain(err)
			}

			if err := vm.LongPress(ids[0]); err != nil {
				return err
			}
			for _, id := range ids[1:] {
				if vm.IsSelected(id) {
					continue
				}
				if _, err := vm.Tap(id); err != nil {
					return err
				}
			}

			res, err := vm.DeleteSelected(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(app.Out, "Deleted %d of %d rooms\n", len(res.Deleted), len(res.Requested))
			for _, id := range res.Requested {
				if ferr, ok := res.Failed[id]; ok {
					fmt.Fprintf(app.Out, "  room %d: %v\n", id, Explain(ferr))
				}
			}
			if len(res.Failed) > 0 {
				return fmt.Errorf("%d deletes failed", len(res.Failed))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&confirmedOnly, "confirmed-only", false, "keep rooms whose delete failed in the local view")
	return cmd
}

func roomsStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status ROOM_NUMBER STATUS",
		Short: "Set a room's status by room number",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, store, err := app.LoggedIn()
			if err != nil {
				return err
			}
			room, err := api.SetRoomStatus(cmd.Context(), store.Session(), args[0], args[1])
			if err != nil {
				return Explain(err)
			}
			fmt.Fprintf(app.Out, "Room %s is now %s\n", room.RoomNumber, room.Status)
			return nil
		},
	}
}

func roomsVacantCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "vacant",
		Short: "List vacant rooms",
		RunE: func(cmd *cobra.Command, args []string) error {
			api, store, err := app.LoggedIn()
			if err != nil {
				return err
			}
			rooms, err := api.VacantRooms(cmd.Context(), store.Session())
			if err != nil {
				return Explain(err)
			}
			w := table(app.Out, "ID", "NUMBER")
			for _, r := range rooms {
				fmt.Fprintf(w, "%d\t%s\n", r.ID, r.RoomNumber)
			}
			return w.Flush()
		},
	}
}

func parseRoomID(s string) (uint64, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid room id %q", s)
	}
	return id, nil
}
