package app

import (
	"os"
	"strings"

	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/studytrack/internal/models"
	"github.com/ayoisaiah/studytrack/internal/ui"
)

// printCatalog prints the entries of a catalog one per line.
func printCatalog(kind string, items []string) {
	if len(items) == 0 {
		pterm.Info.Printfln("No %s saved yet", kind)
		return
	}

	for _, name := range items {
		pterm.Println(name)
	}
}

func profileAddAction(ctx *cli.Context) error {
	name := strings.TrimSpace(ctx.Args().First())
	if name == "" {
		return errNameRequired
	}

	db, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	err = db.SaveProfile(&models.Profile{
		Name:      name,
		Location:  strings.TrimSpace(ctx.String("location")),
		Equipment: strings.TrimSpace(ctx.String("equipment")),
	})
	if err != nil {
		return err
	}

	pterm.Success.Printfln("Profile added: %s", name)

	return nil
}

func profileRenameAction(ctx *cli.Context) error {
	oldName := strings.TrimSpace(ctx.Args().Get(0))
	newName := strings.TrimSpace(ctx.Args().Get(1))

	if oldName == "" || newName == "" {
		return errRenameArgs
	}

	db, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	err = db.RenameProfile(oldName, newName)
	if err != nil {
		return err
	}

	pterm.Success.Printfln("Profile %s renamed to %s", oldName, newName)

	return nil
}

func profileRemoveAction(ctx *cli.Context) error {
	name := strings.TrimSpace(ctx.Args().First())
	if name == "" {
		return errNameRequired
	}

	db, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	err = db.RemoveProfile(name)
	if err != nil {
		return err
	}

	pterm.Success.Printfln("Profile removed: %s", name)

	return nil
}

func profileListAction(ctx *cli.Context) error {
	db, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	profiles, err := db.Profiles()
	if err != nil {
		return err
	}

	if len(profiles) == 0 {
		pterm.Info.Println("No profiles saved yet")
		return nil
	}

	rows := make([][]string, len(profiles))

	for i, p := range profiles {
		rows[i] = []string{p.Name, p.Location, p.Equipment}
	}

	ui.PrintTable(os.Stdout, []string{"NAME", "LOCATION", "EQUIPMENT"}, rows)

	return nil
}

func locationAddAction(ctx *cli.Context) error {
	name := strings.TrimSpace(ctx.Args().First())
	if name == "" {
		return errNameRequired
	}

	db, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	err = db.AddLocation(name)
	if err != nil {
		return err
	}

	pterm.Success.Printfln("Location added: %s", name)

	return nil
}

func locationRemoveAction(ctx *cli.Context) error {
	name := strings.TrimSpace(ctx.Args().First())
	if name == "" {
		return errNameRequired
	}

	db, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	err = db.RemoveLocation(name)
	if err != nil {
		return err
	}

	pterm.Success.Printfln("Location removed: %s", name)

	return nil
}

func locationListAction(ctx *cli.Context) error {
	db, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	items, err := db.Locations()
	if err != nil {
		return err
	}

	printCatalog("locations", items)

	return nil
}

func equipmentAddAction(ctx *cli.Context) error {
	name := strings.TrimSpace(ctx.Args().First())
	if name == "" {
		return errNameRequired
	}

	db, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	err = db.AddEquipment(name)
	if err != nil {
		return err
	}

	pterm.Success.Printfln("Equipment added: %s", name)

	return nil
}

func equipmentRemoveAction(ctx *cli.Context) error {
	name := strings.TrimSpace(ctx.Args().First())
	if name == "" {
		return errNameRequired
	}

	db, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	err = db.RemoveEquipment(name)
	if err != nil {
		return err
	}

	pterm.Success.Printfln("Equipment removed: %s", name)

	return nil
}

func equipmentListAction(ctx *cli.Context) error {
	db, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	items, err := db.Equipment()
	if err != nil {
		return err
	}

	printCatalog("equipment entries", items)

	return nil
}
