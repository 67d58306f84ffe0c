package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/psantana5/fnmon/internal/demo"
	"github.com/psantana5/fnmon/pkg/monitor"
)

// demoCmd represents the demo command
var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run the example monitored functions",
	Long: `Run three scenarios against monitored example functions: a successful
call, an execution failure, and an input validation failure. Each invocation
produces one structured result envelope.`,
	RunE: runDemo,
}

func init() {
	rootCmd.AddCommand(demoCmd)
}

func runDemo(cmd *cobra.Command, args []string) error {
	opts := cfg.Options()

	createUser, err := monitor.Wrap(
		monitor.Func1("create_user", "user_data", demo.CreateUser),
		opts, monitor.Collaborators{})
	if err != nil {
		return fmt.Errorf("failed to wrap create_user: %w", err)
	}

	divide, err := monitor.Wrap(
		monitor.Func2("divide_numbers", "a", "b", demo.DivideNumbers),
		opts, monitor.Collaborators{})
	if err != nil {
		return fmt.Errorf("failed to wrap divide_numbers: %w", err)
	}

	fmt.Println("=== Successful execution ===")
	printOutcome(createUser.Call(demo.UserInput{
		Name:  "John Doe",
		Age:   30,
		Email: "john@example.com",
	}))

	fmt.Println("\n=== Execution error ===")
	printOutcome(divide.Call(10.0, 0.0))

	fmt.Println("\n=== Input validation error ===")
	printOutcome(createUser.Call(map[string]interface{}{
		"name":  "John",
		"age":   "thirty",
		"email": "invalid",
	}))

	return nil
}

// printOutcome renders either a raw value (ReturnRawResult mode) or a
// full result envelope.
func printOutcome(out interface{}) {
	res, ok := out.(*monitor.Result)
	if !ok {
		fmt.Printf("Raw result: %v\n", out)
		return
	}

	if outputFormat == "json" {
		data, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error rendering result: %v\n", err)
			return
		}
		fmt.Println(string(data))
		return
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Property", "Value")

	table.Append([]string{"Function", res.FunctionName})
	table.Append([]string{"Status", string(res.Status)})
	table.Append([]string{"Execution Time", fmt.Sprintf("%.6fs", res.ExecutionTime)})
	table.Append([]string{"Memory Before", fmt.Sprintf("%d B", res.MemoryUsage.Before)})
	table.Append([]string{"Memory After", fmt.Sprintf("%d B", res.MemoryUsage.After)})
	table.Append([]string{"Memory Delta", fmt.Sprintf("%d B", res.MemoryUsage.Delta)})
	table.Append([]string{"CPU Usage", fmt.Sprintf("%.2f%%", res.CPUUsage)})
	table.Append([]string{"Timestamp", res.Timestamp})
	if res.Result != nil {
		table.Append([]string{"Result", fmt.Sprintf("%+v", res.Result)})
	}
	if len(res.Errors) > 0 {
		table.Append([]string{"Errors", firstLines(res.Errors)})
	}

	table.Render()
}

// firstLines keeps error entries readable in table mode by dropping
// traceback bodies.
func firstLines(errs []string) string {
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		if i := strings.IndexByte(e, '\n'); i >= 0 {
			e = e[:i] + " ..."
		}
		out = append(out, e)
	}
	return strings.Join(out, "\n")
}
