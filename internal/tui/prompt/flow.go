package prompt

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	huh "github.com/charmbracelet/huh"

	"github.com/jakoblorz/go-scaffold/internal/generators"
	"github.com/jakoblorz/go-scaffold/internal/generators/app"
	"github.com/jakoblorz/go-scaffold/internal/generators/lib"
	"github.com/jakoblorz/go-scaffold/internal/models"
	"github.com/jakoblorz/go-scaffold/internal/tui"
)

// Flow asks for the generator options the caller left out, using huh forms.
type Flow struct {
	theme *huh.Theme
}

// NewFlow constructs a Flow with the shared huh theme.
func NewFlow() *Flow {
	return &Flow{theme: tui.NewHuhTheme()}
}

// CompleteApp fills in a missing name, type and framework. It returns nil
// when the user aborts.
func (f *Flow) CompleteApp(raw app.RawOptions) (*app.RawOptions, error) {
	if strings.TrimSpace(raw.Name) == "" {
		name, err := f.inputName("Application Name", "my-app")
		if err != nil {
			return abort[app.RawOptions](err)
		}
		raw.Name = name
	}

	if raw.Type == "" && raw.Framework == "" {
		at, err := f.selectAppType()
		if err != nil {
			return abort[app.RawOptions](err)
		}
		raw.Type = at.String()
	}

	if raw.Framework == "" {
		at, err := models.ParseAppType(raw.Type)
		if err != nil {
			return nil, err
		}
		if choices := app.Scaffoldable(at); len(choices) > 1 {
			fw, err := f.selectFramework(at, choices)
			if err != nil {
				return abort[app.RawOptions](err)
			}
			raw.Framework = fw
		}
	}

	return &raw, nil
}

// CompleteLib fills in a missing name and type. It returns nil when the
// user aborts.
func (f *Flow) CompleteLib(raw lib.RawOptions) (*lib.RawOptions, error) {
	if strings.TrimSpace(raw.Name) == "" {
		name, err := f.inputName("Library Name", "shared-utils")
		if err != nil {
			return abort[lib.RawOptions](err)
		}
		raw.Name = name
	}

	if raw.Type == "" {
		lt, err := f.selectLibType()
		if err != nil {
			return abort[lib.RawOptions](err)
		}
		raw.Type = lt.String()
	}

	return &raw, nil
}

func abort[T any](err error) (*T, error) {
	if errors.Is(err, huh.ErrUserAborted) {
		return nil, nil
	}
	return nil, err
}

func (f *Flow) inputName(title, placeholder string) (string, error) {
	name := ""

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Value(&name).
				Placeholder(placeholder).
				Validate(func(v string) error {
					if strings.TrimSpace(v) == "" {
						return fmt.Errorf("name cannot be empty")
					}
					_, err := generators.ProjectDirectory(strings.TrimSpace(v), "")
					return err
				}),
		).
			Title(title).
			Description("Used for the project name and directory."),
	).
		WithTheme(f.theme).
		WithShowHelp(true).
		WithProgramOptions(tea.WithAltScreen())

	if err := form.Run(); err != nil {
		return "", err
	}

	return strings.TrimSpace(name), nil
}

func (f *Flow) selectAppType() (models.AppType, error) {
	selected := ""

	opts := []huh.Option[string]{
		huh.NewOption("web (TypeScript, React, Angular, Next.js, NestJS)", models.AppTypeWeb.String()),
		huh.NewOption("python (Flask, Django, FastAPI)", models.AppTypePython.String()),
		huh.NewOption("php (Symfony, Laravel)", models.AppTypePHP.String()),
		huh.NewOption("ios-native (Xcode, SwiftUI)", models.AppTypeIOS.String()),
		huh.NewOption("android-native (Gradle, Kotlin)", models.AppTypeAndroid.String()),
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Options(opts...).
				Value(&selected),
		).
			Title("Application Type").
			Description("Select the platform of the new application."),
	).
		WithTheme(f.theme).
		WithShowHelp(true).
		WithProgramOptions(tea.WithAltScreen()).
		WithKeyMap(selectKeyMap())

	if err := form.Run(); err != nil {
		return models.AppType(""), err
	}

	return models.ParseAppType(selected)
}

func (f *Flow) selectFramework(at models.AppType, choices []string) (string, error) {
	selected := choices[0]

	opts := make([]huh.Option[string], 0, len(choices))
	for i, fw := range choices {
		label := fw
		if i == 0 {
			label = fw + " (default)"
		}
		opts = append(opts, huh.NewOption(label, fw))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Options(opts...).
				Value(&selected),
		).
			Title("Framework").
			Description(fmt.Sprintf("Select the framework of the %s application.", at)),
	).
		WithTheme(f.theme).
		WithShowHelp(true).
		WithProgramOptions(tea.WithAltScreen()).
		WithKeyMap(selectKeyMap())

	if err := form.Run(); err != nil {
		return "", err
	}

	return selected, nil
}

func (f *Flow) selectLibType() (models.LibType, error) {
	selected := models.LibTypeUtility.String()

	opts := make([]huh.Option[string], 0, len(models.LibTypes))
	for _, lt := range models.LibTypes {
		opts = append(opts, huh.NewOption(lt.String(), lt.String()))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Options(opts...).
				Value(&selected),
		).
			Title("Library Type").
			Description("TypeScript flavours first, then native languages."),
	).
		WithTheme(f.theme).
		WithShowHelp(true).
		WithProgramOptions(tea.WithAltScreen()).
		WithKeyMap(selectKeyMap())

	if err := form.Run(); err != nil {
		return models.LibType(""), err
	}

	return models.ParseLibType(selected)
}

func selectKeyMap() *huh.KeyMap {
	keyMap := huh.NewDefaultKeyMap()
	keyMap.Select.Filter.SetEnabled(false)
	keyMap.Select.Submit.SetKeys("enter", " ")
	keyMap.Select.Submit.SetHelp("space/enter", "continue")
	return keyMap
}
