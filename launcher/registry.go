package launcher

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var AppRegistry = map[string]*AppDef{}

// RegisterCommonFlags registers the `common-` flags shared by many apps.
var RegisterCommonFlags func(cmd *cobra.Command) error

func RegisterApp(appDef *AppDef) {
	if _, found := AppRegistry[appDef.ID]; found {
		panic(fmt.Errorf("app %q already registered", appDef.ID))
	}

	AppRegistry[appDef.ID] = appDef
}

func RegisterFlags(cmd *cobra.Command) error {
	if RegisterCommonFlags != nil {
		if err := RegisterCommonFlags(cmd); err != nil {
			return fmt.Errorf("common flags: %w", err)
		}
	}

	for _, appID := range sortedAppIDs() {
		appDef := AppRegistry[appID]
		if appDef.RegisterFlags != nil {
			userLog.Debug("registering app flags", zap.String("app_id", appDef.ID))
			if err := appDef.RegisterFlags(cmd); err != nil {
				return fmt.Errorf("app %q flags: %w", appDef.ID, err)
			}
		}
	}
	return nil
}

// ParseAppsFromArgs expands the `start` arguments into app ids. Arguments are
// comma or space separated, `all` selects every registered app and `-<app>`
// removes one from the selection.
func ParseAppsFromArgs(args []string) (apps []string) {
	var includeAll bool
	excluded := map[string]bool{}

	for _, arg := range args {
		for _, chunk := range strings.Split(arg, ",") {
			chunk = strings.TrimSpace(chunk)
			switch {
			case chunk == "":
			case chunk == "all":
				includeAll = true
			case strings.HasPrefix(chunk, "-"):
				excluded[chunk[1:]] = true
			default:
				apps = append(apps, chunk)
			}
		}
	}

	if includeAll {
		apps = sortedAppIDs()
	}

	out := apps[:0]
	for _, app := range apps {
		if !excluded[app] {
			out = append(out, app)
		}
	}
	return out
}

func sortedAppIDs() (out []string) {
	for appID := range AppRegistry {
		out = append(out, appID)
	}
	sort.Strings(out)
	return
}
