package launcher

import (
	"fmt"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withRegistry(t *testing.T, appDefs ...*AppDef) {
	previous := AppRegistry
	AppRegistry = map[string]*AppDef{}
	t.Cleanup(func() { AppRegistry = previous })

	for _, appDef := range appDefs {
		RegisterApp(appDef)
	}
}

func TestParseFromArgs(t *testing.T) {
	tests := []struct {
		input  []string
		expect []string
	}{
		{
			input:  []string{"all,-app2"},
			expect: []string{"app1", "app3"},
		},
		{
			input:  []string{"all", " -app2 "},
			expect: []string{"app1", "app3"},
		},
		{
			input:  []string{"all"},
			expect: []string{"app1", "app2", "app3"},
		},
		{
			input:  []string{" app1", " app2"},
			expect: []string{"app1", "app2"},
		},
		{
			input:  []string{" app1, app2"},
			expect: []string{"app1", "app2"},
		},
		{
			input:  []string{"app1,app3,-app3"},
			expect: []string{"app1"},
		},
	}

	withRegistry(t, &AppDef{ID: "app1"}, &AppDef{ID: "app2"}, &AppDef{ID: "app3"})

	for idx, test := range tests {
		t.Run(fmt.Sprintf("%d", idx), func(t *testing.T) {
			res := ParseAppsFromArgs(test.input)
			assert.Equal(t, test.expect, res)
		})
	}
}

func TestRegisterApp_Duplicate(t *testing.T) {
	withRegistry(t, &AppDef{ID: "app1"})

	assert.Panics(t, func() { RegisterApp(&AppDef{ID: "app1"}) })
}

func TestRegisterFlags(t *testing.T) {
	withRegistry(t,
		&AppDef{ID: "app1", RegisterFlags: func(cmd *cobra.Command) error {
			cmd.Flags().String("app1-addr", ":9000", "Address")
			return nil
		}},
		&AppDef{ID: "app2"},
	)

	cmd := &cobra.Command{Use: "start"}
	require.NoError(t, RegisterFlags(cmd))

	flag := cmd.Flags().Lookup("app1-addr")
	require.NotNil(t, flag)
	assert.Equal(t, ":9000", flag.DefValue)
}
