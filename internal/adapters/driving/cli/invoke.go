package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/todos/internal/adapters/driving/command"
)

var invokeCmd = &cobra.Command{
	Use:   "invoke [command] [json-args]",
	Short: "Run a JSON command against the store",
	Long: `Run one named command and print its JSON result.

This is the bridge a desktop or web shell calls. Errors are returned as a
single string and the process exits non-zero.

Commands:
  add_todo     {"description": "..."}
  get_todos    {}
  update_todo  {"todo": {"id": 1, "description": "...", "status": "Complete"}}
  delete_todo  {"id": 1}

Examples:
  todos invoke get_todos
  todos invoke add_todo '{"description":"Buy milk"}'`,
	Args: cobra.RangeArgs(1, 2),
	ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return command.NewDispatcher(nil).Commands(), cobra.ShellCompDirectiveNoFileComp
	},
	RunE: runInvoke,
}

func init() {
	rootCmd.AddCommand(invokeCmd)
}

func runInvoke(cmd *cobra.Command, args []string) error {
	todos, err := requireTodoService()
	if err != nil {
		return err
	}

	var raw json.RawMessage
	if len(args) == 2 {
		raw = json.RawMessage(args[1])
	}

	out, err := command.NewDispatcher(todos).Invoke(cmd.Context(), args[0], raw)
	if err != nil {
		return err
	}

	cmd.Println(string(out))
	return nil
}
