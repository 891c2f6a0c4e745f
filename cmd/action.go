package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/gnzdotmx/ytmanager/internal/actions"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// newActionCommand builds the subcommand running a, with one flag per
// parameter. Parameters with an environment variable read it when the
// flag is not given.
func newActionCommand(a actions.Action) *cobra.Command {
	def := a.Definition()

	var v *viper.Viper
	cmd := &cobra.Command{
		Use:   def.Name,
		Short: def.Summary,
		Long:  def.Description,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			params := collectParams(v, def.Params)

			env, err := loadEnv(cmd.Context(), !def.Offline)
			if err != nil {
				return err
			}

			result, err := registry.Run(cmd.Context(), def.Name, env, params)
			if err != nil {
				return fmt.Errorf("%s: %w", def.Name, err)
			}
			return printResult(cmd.OutOrStdout(), result, prettyIndent)
		},
	}

	v = bindParams(cmd.Flags(), def.Params)
	return cmd
}

// bindParams declares one flag per parameter and binds it, along with its
// environment variable, into a fresh viper instance
func bindParams(flags *pflag.FlagSet, defs []actions.ParamDef) *viper.Viper {
	v := viper.New()
	for _, p := range defs {
		addParamFlag(flags, p)
		_ = v.BindPFlag(p.Name, flags.Lookup(p.Name))
		if p.EnvVar != "" {
			_ = v.BindEnv(p.Name, p.EnvVar)
		}
	}
	return v
}

func addParamFlag(flags *pflag.FlagSet, p actions.ParamDef) {
	usage := p.Description
	if p.Type == actions.TypeChoice {
		usage += " (" + strings.Join(p.Alternatives, ", ") + ")"
	}
	if p.EnvVar != "" {
		usage += " [$" + p.EnvVar + "]"
	}

	switch p.Type {
	case actions.TypeInteger:
		n, _ := p.Default.(int)
		flags.Int(p.Name, n, usage)
	case actions.TypeBoolean:
		b, _ := p.Default.(bool)
		flags.Bool(p.Name, b, usage)
	case actions.TypeStringList:
		flags.StringSlice(p.Name, nil, usage)
	default:
		s, _ := p.Default.(string)
		flags.String(p.Name, s, usage)
	}
}

// collectParams returns the values given on the command line or through
// the environment. Unset parameters are left out so defaults apply.
func collectParams(v *viper.Viper, defs []actions.ParamDef) map[string]any {
	params := make(map[string]any, len(defs))
	for _, p := range defs {
		if v.IsSet(p.Name) {
			params[p.Name] = v.Get(p.Name)
		}
	}
	return params
}

func printResult(w io.Writer, result any, indent int) error {
	if result == nil {
		return nil
	}

	var (
		data []byte
		err  error
	)
	if indent > 0 {
		data, err = json.MarshalIndent(result, "", strings.Repeat(" ", indent))
	} else {
		data, err = json.Marshal(result)
	}
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}

	_, err = fmt.Fprintln(w, string(data))
	return err
}
