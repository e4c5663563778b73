// Command fittrackr runs the interactive single-session demo: one in-memory
// store, one session controller, torn down when the process exits.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/fittrackr/fittrackr/internal/auth"
	"github.com/fittrackr/fittrackr/internal/models"
	"github.com/fittrackr/fittrackr/internal/payment"
	"github.com/fittrackr/fittrackr/internal/session"
	"github.com/fittrackr/fittrackr/internal/storage/memory"
	"github.com/fittrackr/fittrackr/pkg/logging"
)

func main() {
	logging.SetupWithLevel(slog.LevelWarn)
	logger := slog.Default()

	store := memory.New()
	controller := session.NewController(
		store,
		auth.NewPasswordAuthenticator(store),
		payment.NewStubGateway(logger),
		logger,
	)

	fmt.Println("FitTrackr - Your Fitness Journey")
	ctx := context.Background()
	in := bufio.NewScanner(os.Stdin)

	for {
		if !controller.Authenticated() {
			runAuthMenu(ctx, controller, in)
		} else {
			if !runMainMenu(ctx, controller, in) {
				return
			}
		}
	}
}

func runAuthMenu(ctx context.Context, controller *session.Controller, in *bufio.Scanner) {
	fmt.Println("\n[1] Login  [2] Register  [q] Quit")
	switch prompt(in, "> ") {
	case "1":
		username := prompt(in, "Username: ")
		password := promptPassword()
		dispatch(ctx, controller, session.LoginEvent{Username: username, Password: password})
	case "2":
		username := prompt(in, "Username: ")
		password := promptPassword()
		dispatch(ctx, controller, session.RegisterEvent{Username: username, Password: password})
	case "q":
		os.Exit(0)
	}
}

// runMainMenu handles one authenticated action; returns false to quit.
func runMainMenu(ctx context.Context, controller *session.Controller, in *bufio.Scanner) bool {
	fmt.Printf("\nWelcome, %s\n", controller.CurrentUser().Username)
	fmt.Println("[1] Set goals  [2] Subscribe to Premium ($9.99/month)  [3] Generate plan  [4] Plan history  [q] Quit")
	switch prompt(in, "> ") {
	case "1":
		weight, ok := promptFloat(in, "Target weight (kg, 40-200): ", 40, 200)
		if !ok {
			return true
		}
		goalType := models.GoalWeightLoss
		if prompt(in, "Goal [1] Weight Loss [2] Muscle Gain: ") == "2" {
			goalType = models.GoalMuscleGain
		}
		dispatch(ctx, controller, session.SetGoalEvent{TargetWeight: weight, GoalType: goalType})
	case "2":
		dispatch(ctx, controller, session.SubscribeEvent{})
	case "3":
		kind := models.PlanStrength
		label := "Strength Training"
		if prompt(in, "Plan [1] Strength Workout [2] Vegan Meal: ") == "2" {
			kind = models.PlanVeganMeal
			label = "Vegan Nutrition"
		}
		duration, ok := promptInt(in, "Duration (1-12): ", 1, 12)
		if !ok {
			return true
		}
		dispatch(ctx, controller, session.GeneratePlanEvent{Kind: kind, Label: label, Duration: duration})
	case "4":
		records, err := controller.History(ctx)
		if err != nil {
			fmt.Println("Error:", err)
			return true
		}
		if len(records) == 0 {
			fmt.Println("No plans generated yet.")
		}
		for i, record := range records {
			fmt.Printf("%d. %s\n", i+1, record.RenderedText)
		}
	case "q":
		return false
	}
	return true
}

func dispatch(ctx context.Context, controller *session.Controller, event session.Event) {
	msg, err := controller.Handle(ctx, event)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Println(msg)
}

func prompt(in *bufio.Scanner, label string) string {
	fmt.Print(label)
	if !in.Scan() {
		os.Exit(0)
	}
	return strings.TrimSpace(in.Text())
}

func promptPassword() string {
	fmt.Print("Password: ")
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return ""
	}
	return string(password)
}

func promptFloat(in *bufio.Scanner, label string, min, max float64) (float64, bool) {
	value, err := strconv.ParseFloat(prompt(in, label), 64)
	if err != nil || value < min || value > max {
		fmt.Printf("Enter a number between %.0f and %.0f.\n", min, max)
		return 0, false
	}
	return value, true
}

func promptInt(in *bufio.Scanner, label string, min, max int) (int, bool) {
	value, err := strconv.Atoi(prompt(in, label))
	if err != nil || value < min || value > max {
		fmt.Printf("Enter a number between %d and %d.\n", min, max)
		return 0, false
	}
	return value, true
}
