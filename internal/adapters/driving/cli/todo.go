package cli

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/todos/internal/core/domain"
)

var addCmd = &cobra.Command{
	Use:   "add [description...]",
	Short: "Add a new todo",
	Long: `Add a new todo. All arguments are joined with spaces.

Examples:
  todos add Buy milk
  todos add "Call the plumber"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List todos",
	RunE:    runList,
}

var updateCmd = &cobra.Command{
	Use:   "update [id]",
	Short: "Change the description or status of a todo",
	Long: `Change the description or status of a todo.
Fields not given on the command line keep their current value.

Examples:
  todos update 3 --description "Call the electrician"
  todos update 3 --status complete`,
	Args: cobra.ExactArgs(1),
	RunE: runUpdate,
}

var doneCmd = &cobra.Command{
	Use:   "done [id]",
	Short: "Mark a todo complete",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSetStatus(cmd, args, domain.TodoStatusComplete)
	},
}

var undoCmd = &cobra.Command{
	Use:   "undo [id]",
	Short: "Mark a todo incomplete",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSetStatus(cmd, args, domain.TodoStatusIncomplete)
	},
}

var toggleCmd = &cobra.Command{
	Use:   "toggle [id]",
	Short: "Flip a todo between incomplete and complete",
	Args:  cobra.ExactArgs(1),
	RunE:  runToggle,
}

var deleteCmd = &cobra.Command{
	Use:     "delete [id]",
	Aliases: []string{"rm"},
	Short:   "Delete a todo",
	Args:    cobra.ExactArgs(1),
	RunE:    runDelete,
}

// Flags.
var (
	listJSON          bool
	listStatus        string
	updateDescription string
	updateStatus      string
	deleteYes         bool
)

// isTerminal reports whether stdin is interactive.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output as JSON")
	listCmd.Flags().StringVar(&listStatus, "status", "", "Only show todos with this status (incomplete, complete)")

	updateCmd.Flags().StringVarP(&updateDescription, "description", "d", "", "New description")
	updateCmd.Flags().StringVarP(&updateStatus, "status", "s", "", "New status (incomplete, complete)")

	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "Delete without asking")

	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(doneCmd)
	rootCmd.AddCommand(undoCmd)
	rootCmd.AddCommand(toggleCmd)
	rootCmd.AddCommand(deleteCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	todos, err := requireTodoService()
	if err != nil {
		return err
	}

	description := strings.Join(args, " ")
	if err := todos.Add(cmd.Context(), description); err != nil {
		return fmt.Errorf("failed to add todo: %w", err)
	}

	cmd.Printf("Added: %s\n", description)
	return nil
}

func runList(cmd *cobra.Command, _ []string) error {
	todos, err := requireTodoService()
	if err != nil {
		return err
	}

	var filter domain.TodoStatus
	if listStatus != "" {
		filter, err = domain.ParseTodoStatus(listStatus)
		if err != nil {
			return err
		}
	}

	all, err := todos.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list todos: %w", err)
	}

	items := make([]domain.Todo, 0, len(all))
	for i := range all {
		if filter == "" || all[i].Status == filter {
			items = append(items, all[i])
		}
	}

	if listJSON {
		data, err := json.MarshalIndent(items, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal todos: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(items) == 0 {
		cmd.Println("No todos.")
		if filter == "" {
			cmd.Println("Add one with: todos add <description>")
		}
		return nil
	}

	for i := range items {
		cmd.Println(formatTodo(items[i]))
	}
	return nil
}

func runUpdate(cmd *cobra.Command, args []string) error {
	todos, err := requireTodoService()
	if err != nil {
		return err
	}

	id, err := parseTodoID(args[0])
	if err != nil {
		return err
	}

	descChanged := cmd.Flags().Changed("description")
	statusChanged := cmd.Flags().Changed("status")
	if !descChanged && !statusChanged {
		return errors.New("nothing to update: pass --description or --status")
	}

	todo, err := lookupTodo(cmd, id)
	if err != nil {
		return err
	}

	if descChanged {
		todo.Description = updateDescription
	}
	if statusChanged {
		status, err := domain.ParseTodoStatus(updateStatus)
		if err != nil {
			return err
		}
		todo.Status = status
	}

	if err := todos.Update(cmd.Context(), *todo); err != nil {
		return fmt.Errorf("failed to update todo: %w", err)
	}

	cmd.Println(formatTodo(*todo))
	return nil
}

func runSetStatus(cmd *cobra.Command, args []string, status domain.TodoStatus) error {
	todos, err := requireTodoService()
	if err != nil {
		return err
	}

	id, err := parseTodoID(args[0])
	if err != nil {
		return err
	}

	todo, err := lookupTodo(cmd, id)
	if err != nil {
		return err
	}

	todo.Status = status
	if err := todos.Update(cmd.Context(), *todo); err != nil {
		return fmt.Errorf("failed to update todo: %w", err)
	}

	cmd.Println(formatTodo(*todo))
	return nil
}

func runToggle(cmd *cobra.Command, args []string) error {
	todos, err := requireTodoService()
	if err != nil {
		return err
	}

	id, err := parseTodoID(args[0])
	if err != nil {
		return err
	}

	if err := todos.Toggle(cmd.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("todo not found: %d", id)
		}
		return fmt.Errorf("failed to toggle todo: %w", err)
	}

	todo, err := lookupTodo(cmd, id)
	if err != nil {
		return err
	}
	cmd.Println(formatTodo(*todo))
	return nil
}

func runDelete(cmd *cobra.Command, args []string) error {
	todos, err := requireTodoService()
	if err != nil {
		return err
	}

	id, err := parseTodoID(args[0])
	if err != nil {
		return err
	}

	if !deleteYes && isTerminal() {
		label := strconv.FormatInt(id, 10)
		if todo, err := todos.Get(cmd.Context(), id); err == nil {
			label = fmt.Sprintf("%d (%s)", id, todo.Description)
		}
		if !confirm(cmd, fmt.Sprintf("Delete todo %s? [y/N]: ", label)) {
			cmd.Println("Cancelled.")
			return nil
		}
	}

	if err := todos.Delete(cmd.Context(), id); err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}

	cmd.Printf("Deleted todo %d\n", id)
	return nil
}

func lookupTodo(cmd *cobra.Command, id int64) (*domain.Todo, error) {
	todo, err := todoService.Get(cmd.Context(), id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("todo not found: %d", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get todo: %w", err)
	}
	return todo, nil
}

func parseTodoID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid todo id %q", arg)
	}
	return id, nil
}

func formatTodo(todo domain.Todo) string {
	box := "[ ]"
	if todo.IsComplete() {
		box = "[x]"
	}
	return fmt.Sprintf("%s %d  %s", box, todo.ID, todo.Description)
}

//nolint:errcheck // CLI helper, error ignored for UX
func confirm(cmd *cobra.Command, prompt string) bool {
	cmd.Print(prompt)
	reader := bufio.NewReader(cmd.InOrStdin())
	input, _ := reader.ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
