// ABOUTME: Admin CLI for the Nesie credit scoring backend
// ABOUTME: Manages users and credit records over the REST API with a bearer token

package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/Timaska20/Nesie/internal/api"
)

const banner = `
                     _                      _           _
 _ __   ___  ___  (_)  ___        __ _  __| |_ __ ___ (_)_ __
| '_ \ / _ \/ __| | | / _ \_____ / _' |/ _' | '_ ' _ \| | '_ \
| | | |  __/\__ \ | ||  __/_____| (_| | (_| | | | | | | | | | |
|_| |_|\___||___/ |_| \___|      \__,_|\__,_|_| |_| |_|_|_| |_|
`

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := loadConfig()
	if err != nil {
		color.Red("Error: %v\n", err)
		os.Exit(1)
	}

	opts := []api.Option{api.WithTimeout(cfg.timeout())}
	if cfg.modelURL() != "" {
		opts = append(opts, api.WithModelURL(cfg.modelURL()))
	}
	client := api.New(cfg.apiURL(), opts...)
	token := getToken()

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "register":
		err = cmdRegister(client)
	case "login":
		err = cmdLogin(client)
	case "logout":
		err = cmdLogout()
	case "me":
		err = cmdMe(client, token)
	case "users":
		err = cmdUsers(client, token, args)
	case "credits":
		err = cmdCredits(client, token, args)
	case "sample":
		err = cmdSample(client, token, args)
	case "predict":
		err = cmdPredict(client, token, args)
	case "rates":
		err = cmdRates(client)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		color.Red("Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	cyan := color.New(color.FgCyan)
	yellow := color.New(color.FgYellow)

	cyan.Print(banner)
	fmt.Println()
	fmt.Println("Usage: nesie-admin <command> [args]")
	fmt.Println()
	yellow.Println("Commands:")
	fmt.Println("  register                 Create a new account (prompts)")
	fmt.Println("  login                    Log in and store the token")
	fmt.Println("  logout                   Remove the stored token")
	fmt.Println("  me                       Show your identity")
	fmt.Println("  users                    List all users (admin)")
	fmt.Println("  users show <id>          Show one user with credits (admin)")
	fmt.Println("  users promote <id>       Grant a user the admin role (admin)")
	fmt.Println("  users delete <id>        Delete a user (admin)")
	fmt.Println("  credits list <user-id>   List a user's credit records (admin)")
	fmt.Println("  credits add <user-id>    Add a credit record (admin, prompts)")
	fmt.Println("  credits edit <id>        Replace a credit record (admin, prompts)")
	fmt.Println("  credits delete <id>      Delete a credit record (admin)")
	fmt.Println("  sample <label>           Fetch a sample credit record (0 or 1)")
	fmt.Println("  predict <user-id>        Score a user's stored profile (admin)")
	fmt.Println("  rates                    Show tracked exchange rates")
	fmt.Println()
	yellow.Println("Environment:")
	fmt.Println("  NESIE_API_URL            Backend URL (default: http://localhost:8080)")
	fmt.Println("  NESIE_MODEL_URL          Model service URL (default: backend URL)")
	fmt.Println("  NESIE_TOKEN              Bearer token (overrides the stored one)")
	fmt.Println()
	yellow.Println("Examples:")
	fmt.Println("  nesie-admin login")
	fmt.Println("  nesie-admin users")
	fmt.Println("  nesie-admin users promote 7")
	fmt.Println("  nesie-admin credits list 7")
	fmt.Println()
}

// tokenPath is where login stores the bearer token
func tokenPath() string {
	return filepath.Join(configDir(), "nesie", "token")
}

// getToken returns the bearer token from NESIE_TOKEN or the token file
func getToken() string {
	if token := os.Getenv("NESIE_TOKEN"); token != "" {
		return token
	}

	data, err := os.ReadFile(tokenPath())
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func requireToken(token string) error {
	if token == "" {
		return fmt.Errorf("not logged in: run 'nesie-admin login' or set NESIE_TOKEN")
	}
	return nil
}

// readLine prompts for one line of input
func readLine(prompt string) (string, error) {
	fmt.Print(prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// confirm asks a yes/no question and defaults to no
func confirm(prompt string) bool {
	answer, err := readLine(prompt + " [y/N]: ")
	if err != nil {
		return false
	}
	return strings.EqualFold(answer, "y") || strings.EqualFold(answer, "yes")
}

func cmdRegister(client *api.Client) error {
	username, err := readLine("Username: ")
	if err != nil {
		return err
	}
	fullName, err := readLine("Full name (optional): ")
	if err != nil {
		return err
	}
	password, err := readLine("Password: ")
	if err != nil {
		return err
	}

	err = client.Register(context.Background(), api.RegisterRequest{
		Username: username,
		Password: password,
		FullName: fullName,
	})
	if err != nil {
		return err
	}

	color.Green("Account created. Run 'nesie-admin login' to sign in.")
	return nil
}

func cmdLogin(client *api.Client) error {
	username, err := readLine("Username: ")
	if err != nil {
		return err
	}
	password, err := readLine("Password: ")
	if err != nil {
		return err
	}

	ctx := context.Background()
	token, err := client.Login(ctx, username, password)
	if err != nil {
		return err
	}

	info, err := client.UserInfo(ctx, token)
	if err != nil {
		return err
	}

	path := tokenPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(token+"\n"), 0600); err != nil {
		return fmt.Errorf("writing token file: %w", err)
	}

	role := "user"
	if info.IsAdmin {
		role = "admin"
	}
	color.Green("Logged in as %s (%s). Token stored in %s", info.Username, role, path)
	return nil
}

func cmdLogout() error {
	if err := os.Remove(tokenPath()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing token file: %w", err)
	}
	color.Green("Logged out.")
	return nil
}

func cmdMe(client *api.Client, token string) error {
	if err := requireToken(token); err != nil {
		return err
	}

	info, err := client.UserInfo(context.Background(), token)
	if err != nil {
		return err
	}

	cyan := color.New(color.FgCyan)
	fmt.Println()
	cyan.Println("  Identity")
	cyan.Println("  --------")
	fmt.Printf("  ID:       %d\n", info.UserID)
	fmt.Printf("  Username: %s\n", info.Username)
	if info.IsAdmin {
		fmt.Printf("  Role:     %s\n", color.YellowString("admin"))
	} else {
		fmt.Printf("  Role:     user\n")
	}
	fmt.Println()
	return nil
}

func cmdUsers(client *api.Client, token string, args []string) error {
	if err := requireToken(token); err != nil {
		return err
	}

	subcmd := "list"
	if len(args) > 0 {
		subcmd = args[0]
		args = args[1:]
	}

	switch subcmd {
	case "list", "ls":
		return cmdUsersList(client, token)
	case "show":
		return cmdUsersShow(client, token, args)
	case "promote":
		return cmdUsersPromote(client, token, args)
	case "delete", "rm", "remove":
		return cmdUsersDelete(client, token, args)
	default:
		return fmt.Errorf("unknown users subcommand: %s (use list, show, promote, delete)", subcmd)
	}
}

func cmdUsersList(client *api.Client, token string) error {
	users, err := client.ListUsers(context.Background(), token)
	if err != nil {
		return err
	}

	cyan := color.New(color.FgCyan)
	fmt.Println()
	cyan.Println("  Users")
	cyan.Println("  -----")

	if len(users) == 0 {
		fmt.Println("  (no users)")
		fmt.Println()
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  ID\tUSERNAME\tROLE")
	fmt.Fprintln(w, "  --\t--------\t----")
	for _, u := range users {
		role := "user"
		if u.IsAdmin {
			role = "admin"
		}
		fmt.Fprintf(w, "  %d\t%s\t%s\n", u.ID, u.Username, role)
	}
	w.Flush()
	fmt.Println()
	return nil
}

func cmdUsersShow(client *api.Client, token string, args []string) error {
	userID, err := idArg(args, "users show <id>")
	if err != nil {
		return err
	}

	ctx := context.Background()
	user, err := client.FindUser(ctx, token, userID)
	if err != nil {
		return err
	}

	cyan := color.New(color.FgCyan)
	fmt.Println()
	cyan.Println("  User")
	cyan.Println("  ----")
	fmt.Printf("  ID:       %d\n", user.ID)
	fmt.Printf("  Username: %s\n", user.Username)
	fmt.Printf("  Admin:    %t\n", user.IsAdmin)
	fmt.Println()

	credits, err := client.UserCredits(ctx, token, userID)
	if err != nil {
		return err
	}
	printCredits(credits)
	return nil
}

func cmdUsersPromote(client *api.Client, token string, args []string) error {
	userID, err := idArg(args, "users promote <id>")
	if err != nil {
		return err
	}

	if err := client.MakeAdmin(context.Background(), token, userID); err != nil {
		return err
	}

	color.Green("User %d is now an administrator.", userID)
	return nil
}

func cmdUsersDelete(client *api.Client, token string, args []string) error {
	userID, err := idArg(args, "users delete <id>")
	if err != nil {
		return err
	}

	if !confirm(fmt.Sprintf("Delete user %d and all their records?", userID)) {
		fmt.Println("Aborted.")
		return nil
	}

	if err := client.DeleteUser(context.Background(), token, userID); err != nil {
		return err
	}

	color.Green("User %d deleted.", userID)
	return nil
}

func cmdCredits(client *api.Client, token string, args []string) error {
	if err := requireToken(token); err != nil {
		return err
	}

	subcmd := "list"
	if len(args) > 0 {
		subcmd = args[0]
		args = args[1:]
	}

	switch subcmd {
	case "list", "ls":
		return cmdCreditsList(client, token, args)
	case "add", "create":
		return cmdCreditsAdd(client, token, args)
	case "edit", "update":
		return cmdCreditsEdit(client, token, args)
	case "delete", "rm", "remove":
		return cmdCreditsDelete(client, token, args)
	default:
		return fmt.Errorf("unknown credits subcommand: %s (use list, add, edit, delete)", subcmd)
	}
}

func cmdCreditsList(client *api.Client, token string, args []string) error {
	userID, err := idArg(args, "credits list <user-id>")
	if err != nil {
		return err
	}

	credits, err := client.UserCredits(context.Background(), token, userID)
	if err != nil {
		return err
	}
	printCredits(credits)
	return nil
}

// creditInput is the raw prompt input for a credit record.
type creditInput struct {
	LoanAmount          string
	InterestRate        string
	TermMonths          string
	Status              string
	PersonAge           string
	PersonIncome        string
	PersonHomeOwnership string
	PersonEmpLength     string
	LoanIntent          string
	LoanGrade           string
	DefaultOnFile       string
	CreditHistoryLength string
}

// promptCreditInput collects the credit fields one line at a time.
// Bracketed labels show the default taken when the line is left empty.
func promptCreditInput() (creditInput, error) {
	var in creditInput
	fields := []struct {
		label string
		dst   *string
	}{
		{"Loan amount: ", &in.LoanAmount},
		{"Interest rate (%): ", &in.InterestRate},
		{"Term (months): ", &in.TermMonths},
		{"Status [active]: ", &in.Status},
		{"Age: ", &in.PersonAge},
		{"Annual income: ", &in.PersonIncome},
		{"Home ownership [RENT]: ", &in.PersonHomeOwnership},
		{"Employment length (years): ", &in.PersonEmpLength},
		{"Loan intent [EDUCATION]: ", &in.LoanIntent},
		{"Loan grade [A]: ", &in.LoanGrade},
		{"Previous default on file? [y/N]: ", &in.DefaultOnFile},
		{"Credit history length (years): ", &in.CreditHistoryLength},
	}
	for _, f := range fields {
		v, err := readLine(f.label)
		if err != nil {
			return in, err
		}
		*f.dst = v
	}
	return in, nil
}

// parseCreditInput coerces prompt input into a create request. Enum
// fields fall back to the autofill defaults when left empty; the
// loan-to-income ratio is always recomputed.
func parseCreditInput(userID int64, in creditInput) (*api.CreditCreate, error) {
	amount, err := strconv.ParseFloat(in.LoanAmount, 64)
	if err != nil {
		return nil, fmt.Errorf("loan amount must be a number")
	}
	rate, err := strconv.ParseFloat(in.InterestRate, 64)
	if err != nil {
		return nil, fmt.Errorf("interest rate must be a number")
	}
	term, err := strconv.Atoi(in.TermMonths)
	if err != nil {
		return nil, fmt.Errorf("term must be a whole number of months")
	}
	age, err := strconv.Atoi(in.PersonAge)
	if err != nil {
		return nil, fmt.Errorf("age must be a whole number")
	}
	income, err := strconv.ParseFloat(in.PersonIncome, 64)
	if err != nil {
		return nil, fmt.Errorf("income must be a number")
	}
	empLength, err := strconv.Atoi(in.PersonEmpLength)
	if err != nil {
		return nil, fmt.Errorf("employment length must be a whole number of years")
	}
	histLength, err := strconv.Atoi(in.CreditHistoryLength)
	if err != nil {
		return nil, fmt.Errorf("credit history length must be a whole number of years")
	}

	status := in.Status
	if status == "" {
		status = "active"
	}
	ownership := in.PersonHomeOwnership
	if ownership == "" {
		ownership = api.DefaultHomeOwnership
	}
	intent := in.LoanIntent
	if intent == "" {
		intent = api.DefaultLoanIntent
	}
	grade := in.LoanGrade
	if grade == "" {
		grade = api.DefaultLoanGrade
	}

	return &api.CreditCreate{
		UserID:              userID,
		LoanAmount:          amount,
		InterestRate:        rate,
		TermMonths:          term,
		Status:              status,
		PersonAge:           age,
		PersonIncome:        income,
		PersonHomeOwnership: ownership,
		PersonEmpLength:     empLength,
		LoanIntent:          intent,
		LoanGrade:           grade,
		LoanPercentIncome:   api.LoanPercentIncome(amount, income),
		DefaultOnFile:       strings.EqualFold(in.DefaultOnFile, "y") || strings.EqualFold(in.DefaultOnFile, "yes"),
		CreditHistoryLength: histLength,
	}, nil
}

func cmdCreditsAdd(client *api.Client, token string, args []string) error {
	userID, err := idArg(args, "credits add <user-id>")
	if err != nil {
		return err
	}

	in, err := promptCreditInput()
	if err != nil {
		return err
	}
	credit, err := parseCreditInput(userID, in)
	if err != nil {
		return err
	}

	if err := client.CreateCredit(context.Background(), token, *credit); err != nil {
		return err
	}

	color.Green("Credit record added for user %d.", userID)
	return nil
}

func cmdCreditsEdit(client *api.Client, token string, args []string) error {
	creditID, err := idArg(args, "credits edit <id>")
	if err != nil {
		return err
	}

	userLine, err := readLine("User id: ")
	if err != nil {
		return err
	}
	userID, err := strconv.ParseInt(userLine, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid user id %q", userLine)
	}

	in, err := promptCreditInput()
	if err != nil {
		return err
	}
	credit, err := parseCreditInput(userID, in)
	if err != nil {
		return err
	}

	if err := client.UpdateCredit(context.Background(), token, creditID, *credit); err != nil {
		return err
	}

	color.Green("Credit record %d updated.", creditID)
	return nil
}

func cmdCreditsDelete(client *api.Client, token string, args []string) error {
	creditID, err := idArg(args, "credits delete <id>")
	if err != nil {
		return err
	}

	if !confirm(fmt.Sprintf("Delete credit record %d?", creditID)) {
		fmt.Println("Aborted.")
		return nil
	}

	if err := client.DeleteCredit(context.Background(), token, creditID); err != nil {
		return err
	}

	color.Green("Credit record %d deleted.", creditID)
	return nil
}

func printCredits(credits []api.CreditRecord) {
	cyan := color.New(color.FgCyan)
	cyan.Println("  Credit Records")
	cyan.Println("  --------------")

	if len(credits) == 0 {
		fmt.Println("  (no credit records)")
		fmt.Println()
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  ID\tAMOUNT\tRATE\tTERM\tSTATUS")
	fmt.Fprintln(w, "  --\t------\t----\t----\t------")
	for _, c := range credits {
		fmt.Fprintf(w, "  %d\t%.2f\t%.2f%%\t%d mo\t%s\n",
			c.ID, c.LoanAmount, c.InterestRate, c.TermMonths, c.Status)
	}
	w.Flush()
	fmt.Println()
}

func cmdSample(client *api.Client, token string, args []string) error {
	if err := requireToken(token); err != nil {
		return err
	}

	label, err := idArg(args, "sample <label>")
	if err != nil {
		return err
	}
	if label != 0 && label != 1 {
		return fmt.Errorf("label must be 0 (rejected) or 1 (approved)")
	}

	sample, err := client.SampleCredit(context.Background(), token, int(label))
	if err != nil {
		return err
	}

	cyan := color.New(color.FgCyan)
	fmt.Println()
	cyan.Println("  Sample Credit")
	cyan.Println("  -------------")
	fmt.Printf("  Amount:          %.2f\n", sample.LoanAmount)
	fmt.Printf("  Rate:            %.2f%%\n", sample.InterestRate)
	fmt.Printf("  Term:            %d months\n", sample.TermMonths)
	fmt.Printf("  Age:             %d\n", sample.PersonAge)
	fmt.Printf("  Income:          %.2f\n", sample.PersonIncome)
	fmt.Printf("  Home ownership:  %s\n", sample.PersonHomeOwnership)
	fmt.Printf("  Employment:      %d years\n", sample.PersonEmpLength)
	fmt.Printf("  Intent:          %s\n", sample.LoanIntent)
	fmt.Printf("  Grade:           %s\n", sample.LoanGrade)
	fmt.Printf("  Default on file: %s\n", sample.DefaultOnFile)
	fmt.Printf("  History length:  %d years\n", sample.CreditHistoryLength)
	fmt.Println()
	return nil
}

func cmdPredict(client *api.Client, token string, args []string) error {
	if err := requireToken(token); err != nil {
		return err
	}

	userID, err := idArg(args, "predict <user-id>")
	if err != nil {
		return err
	}

	pred, err := client.PredictForUser(context.Background(), token, userID)
	if err != nil {
		return err
	}

	fmt.Println()
	if pred.Approved() {
		color.Green("  Approved (score %.2f)", pred.PredictionScore)
	} else {
		color.Red("  Rejected (score %.2f)", pred.PredictionScore)
	}
	fmt.Println()
	return nil
}

func cmdRates(client *api.Client) error {
	rates, err := client.CurrencyRates(context.Background())
	if err != nil {
		return err
	}

	cyan := color.New(color.FgCyan)
	fmt.Println()
	cyan.Println("  Exchange Rates")
	cyan.Println("  --------------")

	if len(rates) == 0 {
		fmt.Println("  (no rates)")
		fmt.Println()
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  CURRENCY\tRATE\tDATE")
	fmt.Fprintln(w, "  --------\t----\t----")
	for _, r := range rates {
		fmt.Fprintf(w, "  %s\t%.4f\t%s\n", r.Currency, r.Rate, r.Date)
	}
	w.Flush()
	fmt.Println()
	return nil
}

// idArg parses the single numeric argument of a subcommand
func idArg(args []string, usage string) (int64, error) {
	if len(args) < 1 {
		return 0, fmt.Errorf("usage: nesie-admin %s", usage)
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", args[0])
	}
	return id, nil
}
