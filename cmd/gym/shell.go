package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"gymops/gym-manager/internal/domain"
	"gymops/gym-manager/internal/repository"
	"gymops/gym-manager/internal/service"
)

// shell is the interactive front over the services. It collects validated
// scalar input, calls a workflow, and prints the plain result; every
// business rule lives below it.
type shell struct {
	enrollment service.EnrollmentService
	contracts  service.ContractService
	clients    service.ClientService
	catalog    service.CatalogService
	finance    service.FinanceService
	nutrition  service.NutritionService
	progress   service.ProgressService

	in *bufio.Reader
}

func (s *shell) run(ctx context.Context) {
	s.in = bufio.NewReader(os.Stdin)
	for {
		fmt.Println("\n=== Gym Manager ===")
		fmt.Println(" 1) Enroll new client")
		fmt.Println(" 2) Attach plan to existing client")
		fmt.Println(" 3) Clients")
		fmt.Println(" 4) Training plans")
		fmt.Println(" 5) Trainers")
		fmt.Println(" 6) Contracts")
		fmt.Println(" 7) Nutrition plans")
		fmt.Println(" 8) Progress tracking")
		fmt.Println(" 9) Finances")
		fmt.Println(" 0) Exit")
		switch s.promptInt("Choice") {
		case 1:
			s.report(s.enroll(ctx))
		case 2:
			s.report(s.attachPlan(ctx))
		case 3:
			s.report(s.clientsMenu(ctx))
		case 4:
			s.report(s.plansMenu(ctx))
		case 5:
			s.report(s.trainersMenu(ctx))
		case 6:
			s.report(s.contractsMenu(ctx))
		case 7:
			s.report(s.nutritionMenu(ctx))
		case 8:
			s.report(s.progressMenu(ctx))
		case 9:
			s.report(s.financeMenu(ctx))
		case 0:
			return
		}
	}
}

func (s *shell) report(err error) {
	if err != nil {
		fmt.Printf("\nOperation failed, nothing was committed: %v\n", err)
	}
}

// --- prompt helpers ---

func (s *shell) prompt(label string) string {
	fmt.Printf("%s: ", label)
	line, _ := s.in.ReadString('\n')
	return strings.TrimSpace(line)
}

// promptRequired re-prompts until a non-blank value is entered.
func (s *shell) promptRequired(label string) string {
	for {
		if v := s.prompt(label); v != "" {
			return v
		}
		fmt.Println("A value is required.")
	}
}

func (s *shell) promptDefault(label, def string) string {
	v := s.prompt(fmt.Sprintf("%s [%s]", label, def))
	if v == "" {
		return def
	}
	return v
}

func (s *shell) promptInt(label string) int {
	n, err := strconv.Atoi(s.prompt(label))
	if err != nil {
		return -1
	}
	return n
}

func (s *shell) promptFloat(label string, def float64) float64 {
	v := s.prompt(fmt.Sprintf("%s [%.2f]", label, def))
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

func (s *shell) confirm(label string) bool {
	v := strings.ToLower(s.prompt(label + " (y/N)"))
	return v == "y" || v == "yes"
}

// choose prints numbered options and returns the selected index, or -1.
func (s *shell) choose(label string, options []string) int {
	for i, opt := range options {
		fmt.Printf(" %d) %s\n", i+1, opt)
	}
	n := s.promptInt(label)
	if n < 1 || n > len(options) {
		return -1
	}
	return n - 1
}

// --- selection helpers over the services ---

func (s *shell) selectPlan(ctx context.Context) (*domain.TrainingPlan, error) {
	plans, err := s.catalog.ListPlans(ctx)
	if err != nil {
		return nil, err
	}
	if len(plans) == 0 {
		fmt.Println("No training plans registered.")
		return nil, nil
	}
	options := make([]string, len(plans))
	for i, p := range plans {
		options[i] = fmt.Sprintf("%s - $%.2f (%d days, %s)", p.Name, p.SuggestedPrice, p.DurationDays, p.Level)
	}
	idx := s.choose("Select a plan", options)
	if idx < 0 {
		return nil, nil
	}
	return &plans[idx], nil
}

func (s *shell) selectClient(ctx context.Context) (*domain.Client, error) {
	clients, err := s.clients.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(clients) == 0 {
		fmt.Println("No clients registered.")
		return nil, nil
	}
	options := make([]string, len(clients))
	for i, c := range clients {
		state := "active"
		if !c.Active {
			state = "inactive"
		}
		options[i] = fmt.Sprintf("%s <%s> (%s)", c.Name, c.Email, state)
	}
	idx := s.choose("Select a client", options)
	if idx < 0 {
		return nil, nil
	}
	return &clients[idx], nil
}

func (s *shell) selectTrainer(ctx context.Context) (*primitive.ObjectID, error) {
	trainers, err := s.catalog.ListTrainers(ctx)
	if err != nil {
		return nil, err
	}
	if len(trainers) == 0 {
		return nil, nil
	}
	options := []string{"No trainer"}
	for _, t := range trainers {
		options = append(options, t.Name)
	}
	idx := s.choose("Assign a trainer", options)
	if idx <= 0 {
		return nil, nil
	}
	return &trainers[idx-1].ID, nil
}

func (s *shell) selectContract(contracts []repository.ContractWithInfo) *repository.ContractWithInfo {
	if len(contracts) == 0 {
		fmt.Println("No matching contracts.")
		return nil
	}
	options := make([]string, len(contracts))
	for i, c := range contracts {
		options[i] = fmt.Sprintf("%s - %s ($%.2f, %s, ends %s)",
			c.Client.Name, c.Plan.Name, c.Price, c.Status, c.EndDate.Format("2006-01-02"))
	}
	idx := s.choose("Select a contract", options)
	if idx < 0 {
		return nil
	}
	return &contracts[idx]
}

// collectMeals drives the bounded meal-selection loop over a MealBuilder.
func (s *shell) collectMeals() []domain.Meal {
	builder := domain.NewMealBuilder()
	for {
		remaining := builder.Remaining()
		if len(remaining) == 0 {
			break
		}
		options := make([]string, len(remaining))
		for i, t := range remaining {
			options[i] = string(t)
		}
		options = append(options, "Finish and save")
		idx := s.choose(fmt.Sprintf("Add meal (%d/%d)", builder.Len()+1, len(domain.AllMealTypes)), options)
		if idx < 0 || idx == len(remaining) {
			break
		}
		mealType := remaining[idx]
		description := s.prompt(fmt.Sprintf("Description for %s", mealType))
		var calories *int
		if v := s.prompt("Estimated calories (optional)"); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				calories = &n
			}
		}
		if err := builder.Add(mealType, description, calories); err != nil {
			fmt.Printf("Not added: %v\n", err)
		}
	}
	return builder.Meals()
}

func (s *shell) collectNutrition() *service.NutritionInput {
	if !s.confirm("Add a nutrition plan to this contract?") {
		return nil
	}
	// The name is the only free-text field the plan factory rejects when
	// blank; collecting it here keeps the enrollment retry loop converging.
	input := &service.NutritionInput{
		Name:        s.promptRequired("Nutrition plan name"),
		Description: s.prompt("Nutrition plan description"),
	}
	input.Meals = s.collectMeals()
	if len(input.Meals) == 0 {
		fmt.Println("No meals added; skipping nutrition plan.")
		return nil
	}
	return input
}

// --- workflows ---

func (s *shell) enroll(ctx context.Context) error {
	fmt.Println("\n--- Enroll New Client ---")
	name := s.prompt("Full name")
	email := s.prompt("Email")
	phone := s.prompt("Phone (10 digits)")

	plan, err := s.selectPlan(ctx)
	if err != nil || plan == nil {
		return err
	}
	price := s.promptFloat("Final contract price", plan.SuggestedPrice)
	nutrition := s.collectNutrition()
	trainerID, err := s.selectTrainer(ctx)
	if err != nil {
		return err
	}

	var result *service.EnrollmentResult
	for {
		result, err = s.enrollment.EnrollClient(ctx, service.EnrollmentInput{
			ClientName:  name,
			ClientEmail: email,
			ClientPhone: phone,
			PlanID:      plan.ID,
			FinalPrice:  price,
			TrainerID:   trainerID,
			Nutrition:   nutrition,
		})
		// Validation failures happen before any write; re-collect and retry.
		var vErr *domain.ValidationError
		if errors.As(err, &vErr) {
			fmt.Printf("Invalid input (%s), please re-enter.\n", strings.Join(vErr.Fields, ", "))
			name = s.promptDefault("Full name", name)
			email = s.promptDefault("Email", email)
			phone = s.promptDefault("Phone (10 digits)", phone)
			price = s.promptFloat("Final contract price", plan.SuggestedPrice)
			continue
		}
		break
	}
	if err != nil {
		return err
	}
	fmt.Printf("\nEnrollment complete. Contract %s created for plan %q.\n", result.ContractID.Hex(), result.PlanName)
	if result.NutritionPlanID != nil {
		fmt.Println("A nutrition plan was attached to the contract.")
	}
	return nil
}

func (s *shell) attachPlan(ctx context.Context) error {
	fmt.Println("\n--- Attach Plan to Client ---")
	client, err := s.selectClient(ctx)
	if err != nil || client == nil {
		return err
	}
	plan, err := s.selectPlan(ctx)
	if err != nil || plan == nil {
		return err
	}
	price := s.promptFloat("Final contract price", plan.SuggestedPrice)
	nutrition := s.collectNutrition()
	trainerID, err := s.selectTrainer(ctx)
	if err != nil {
		return err
	}

	result, err := s.enrollment.AttachPlan(ctx, client.ID, service.AttachPlanInput{
		PlanID:     plan.ID,
		FinalPrice: price,
		TrainerID:  trainerID,
		Nutrition:  nutrition,
	})
	if err != nil {
		return err
	}
	fmt.Printf("\nContract %s created for %s.\n", result.ContractID.Hex(), client.Name)
	return nil
}

func (s *shell) clientsMenu(ctx context.Context) error {
	switch s.choose("Clients", []string{"List", "Edit", "Delete"}) {
	case 0:
		clients, err := s.clients.List(ctx)
		if err != nil {
			return err
		}
		for _, c := range clients {
			state := "active"
			if !c.Active {
				state = "inactive"
			}
			fmt.Printf("%-25s %-30s %-12s %s\n", c.Name, c.Email, c.Phone, state)
		}
	case 1:
		return s.editClient(ctx)
	case 2:
		client, err := s.selectClient(ctx)
		if err != nil || client == nil {
			return err
		}
		if s.confirm(fmt.Sprintf("Permanently delete %s?", client.Name)) {
			return s.clients.Delete(ctx, client.ID)
		}
	}
	return nil
}

func (s *shell) editClient(ctx context.Context) error {
	client, err := s.selectClient(ctx)
	if err != nil || client == nil {
		return err
	}
	name := s.promptDefault("Name", client.Name)
	email := s.promptDefault("Email", client.Email)
	phone := s.promptDefault("Phone", client.Phone)
	active := s.confirm("Is the client active?")

	if client.Active && !active {
		if !s.confirm("WARNING: deactivating cancels all of this client's active contracts. Continue?") {
			fmt.Println("Edit aborted; client unchanged.")
			return nil
		}
	}

	update := domain.ClientUpdate{Active: &active}
	if name != client.Name {
		update.Name = &name
	}
	if email != client.Email {
		update.Email = &email
	}
	if phone != client.Phone {
		update.Phone = &phone
	}

	result, err := s.clients.Update(ctx, client.ID, update)
	if err != nil {
		return err
	}
	fmt.Println("\nClient updated.")
	if result.Deactivated {
		fmt.Printf("%d active contract(s) were cancelled.\n", result.ContractsCancelled)
	}
	return nil
}

func (s *shell) plansMenu(ctx context.Context) error {
	switch s.choose("Training plans", []string{"List", "Create", "Edit", "Delete"}) {
	case 0:
		plans, err := s.catalog.ListPlans(ctx)
		if err != nil {
			return err
		}
		for _, p := range plans {
			fmt.Printf("%-25s %4d days  %-12s $%.2f  %s\n", p.Name, p.DurationDays, p.Level, p.SuggestedPrice, p.Goals)
		}
	case 1:
		name := s.prompt("Plan name")
		duration, _ := strconv.Atoi(s.prompt("Duration (days)"))
		goals := s.prompt("Goals")
		level := domain.Level(s.prompt("Level (beginner/intermediate/advanced)"))
		price := s.promptFloat("Suggested price", 0)
		id, err := s.catalog.CreatePlan(ctx, name, duration, goals, level, price)
		if err != nil {
			return err
		}
		fmt.Printf("Plan %s created.\n", id.Hex())
	case 2:
		plan, err := s.selectPlan(ctx)
		if err != nil || plan == nil {
			return err
		}
		update := domain.TrainingPlanUpdate{}
		if v := s.promptDefault("Name", plan.Name); v != plan.Name {
			update.Name = &v
		}
		if v, err := strconv.Atoi(s.promptDefault("Duration (days)", strconv.Itoa(plan.DurationDays))); err == nil && v != plan.DurationDays {
			update.DurationDays = &v
		}
		if v := s.promptDefault("Goals", plan.Goals); v != plan.Goals {
			update.Goals = &v
		}
		if v := domain.Level(s.promptDefault("Level", string(plan.Level))); v != plan.Level {
			update.Level = &v
		}
		if v := s.promptFloat("Suggested price", plan.SuggestedPrice); v != plan.SuggestedPrice {
			update.SuggestedPrice = &v
		}
		if update.IsEmpty() {
			fmt.Println("Nothing to change.")
			return nil
		}
		return s.catalog.UpdatePlan(ctx, plan.ID, update)
	case 3:
		plan, err := s.selectPlan(ctx)
		if err != nil || plan == nil {
			return err
		}
		if s.confirm(fmt.Sprintf("Delete plan %q?", plan.Name)) {
			return s.catalog.DeletePlan(ctx, plan.ID)
		}
	}
	return nil
}

func (s *shell) trainersMenu(ctx context.Context) error {
	switch s.choose("Trainers", []string{"List", "Create"}) {
	case 0:
		trainers, err := s.catalog.ListTrainers(ctx)
		if err != nil {
			return err
		}
		for _, t := range trainers {
			fmt.Println(t.Name)
		}
	case 1:
		id, err := s.catalog.CreateTrainer(ctx, s.prompt("Trainer name"))
		if err != nil {
			return err
		}
		fmt.Printf("Trainer %s created.\n", id.Hex())
	}
	return nil
}

func (s *shell) contractsMenu(ctx context.Context) error {
	choice := s.choose("Contracts", []string{"List all", "List active", "Cancel", "Renew", "Finalize expired"})
	switch choice {
	case 0, 1:
		var (
			contracts []repository.ContractWithInfo
			err       error
		)
		if choice == 1 {
			contracts, err = s.contracts.ListActive(ctx)
		} else {
			contracts, err = s.contracts.ListAll(ctx)
		}
		if err != nil {
			return err
		}
		for _, c := range contracts {
			trainer := "-"
			if c.Trainer != nil {
				trainer = c.Trainer.Name
			}
			fmt.Printf("%-25s %-20s $%-10.2f %-10s %s -> %s  trainer: %s\n",
				c.Client.Name, c.Plan.Name, c.Price, c.Status,
				c.StartDate.Format("2006-01-02"), c.EndDate.Format("2006-01-02"), trainer)
		}
	case 2:
		return s.cancelContract(ctx)
	case 3:
		return s.renewContract(ctx)
	case 4:
		return s.finalizeExpired(ctx)
	}
	return nil
}

func (s *shell) cancelContract(ctx context.Context) error {
	active, err := s.contracts.ListActive(ctx)
	if err != nil {
		return err
	}
	selected := s.selectContract(active)
	if selected == nil {
		return nil
	}
	if !s.confirm("Cancel this contract? This cannot be undone.") {
		fmt.Println("Cancellation aborted.")
		return nil
	}
	refund := s.confirm(fmt.Sprintf("Issue a refund of $%.2f?", selected.Price))

	result, err := s.contracts.Cancel(ctx, selected.Contract.ID, refund)
	if err != nil {
		return err
	}
	fmt.Println("\nContract cancelled.")
	if result.RefundID != nil {
		fmt.Printf("Refund of $%.2f recorded.\n", result.Refunded)
	}
	return nil
}

func (s *shell) renewContract(ctx context.Context) error {
	renewable, err := s.contracts.ListRenewable(ctx)
	if err != nil {
		return err
	}
	selected := s.selectContract(renewable)
	if selected == nil {
		return nil
	}
	price := s.promptFloat("Price for the new period", selected.Plan.SuggestedPrice)
	trainerID, err := s.selectTrainer(ctx)
	if err != nil {
		return err
	}

	result, err := s.contracts.Renew(ctx, selected.Contract.ID, price, trainerID)
	if err != nil {
		return err
	}
	fmt.Printf("\nContract renewed. New contract %s runs until %s.\n",
		result.NewContractID.Hex(), result.EndDate.Format("2006-01-02"))
	return nil
}

func (s *shell) finalizeExpired(ctx context.Context) error {
	expired, err := s.contracts.ListExpired(ctx)
	if err != nil {
		return err
	}
	if len(expired) == 0 {
		fmt.Println("No expired active contracts found.")
		return nil
	}
	for _, c := range expired {
		fmt.Printf("- %s, plan %s, ended %s\n", c.Client.Name, c.Plan.Name, c.EndDate.Format("2006-01-02"))
	}
	if !s.confirm(fmt.Sprintf("Set these %d contracts to finalized?", len(expired))) {
		return nil
	}
	result, err := s.contracts.FinalizeExpired(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("\nDone. %d of %d contracts updated.\n", result.Modified, result.Matched)
	return nil
}

func (s *shell) nutritionMenu(ctx context.Context) error {
	switch s.choose("Nutrition plans", []string{"Create for a contract", "View by client", "Replace", "Delete"}) {
	case 0:
		eligible, err := s.nutrition.EligibleContracts(ctx)
		if err != nil {
			return err
		}
		selected := s.selectContract(eligible)
		if selected == nil {
			return nil
		}
		name := s.promptRequired("Nutrition plan name")
		description := s.prompt("Description")
		meals := s.collectMeals()
		if len(meals) == 0 {
			fmt.Println("A nutrition plan needs at least one meal.")
			return nil
		}
		id, err := s.nutrition.Create(ctx, selected.Contract.ID, name, description, meals)
		if err != nil {
			return err
		}
		fmt.Printf("Nutrition plan %s created.\n", id.Hex())
	case 1:
		client, err := s.selectClient(ctx)
		if err != nil || client == nil {
			return err
		}
		plans, err := s.nutrition.ListByClient(ctx, client.ID)
		if err != nil {
			return err
		}
		for _, p := range plans {
			fmt.Printf("%s (%s, plan %s)\n", p.Name, p.RegisteredAt.Format("2006-01-02"), p.TrainingPlan.Name)
			for _, m := range p.Meals {
				cal := "-"
				if m.EstimatedCalories != nil {
					cal = fmt.Sprintf("%d kcal", *m.EstimatedCalories)
				}
				fmt.Printf("  %-10s %-40s %s\n", m.Type, m.Description, cal)
			}
		}
	case 2:
		plan, err := s.selectNutritionPlan(ctx)
		if err != nil || plan == nil {
			return err
		}
		name := s.promptDefault("Name", plan.Name)
		description := s.promptDefault("Description", plan.Description)
		meals := s.collectMeals()
		if len(meals) == 0 {
			fmt.Println("A nutrition plan needs at least one meal.")
			return nil
		}
		return s.nutrition.Replace(ctx, plan.NutritionPlan.ID, name, description, meals)
	case 3:
		plan, err := s.selectNutritionPlan(ctx)
		if err != nil || plan == nil {
			return err
		}
		if s.confirm(fmt.Sprintf("Delete nutrition plan %q?", plan.Name)) {
			return s.nutrition.Delete(ctx, plan.NutritionPlan.ID)
		}
	}
	return nil
}

func (s *shell) selectNutritionPlan(ctx context.Context) (*repository.NutritionPlanWithInfo, error) {
	client, err := s.selectClient(ctx)
	if err != nil || client == nil {
		return nil, err
	}
	plans, err := s.nutrition.ListByClient(ctx, client.ID)
	if err != nil {
		return nil, err
	}
	if len(plans) == 0 {
		fmt.Println("This client has no nutrition plans.")
		return nil, nil
	}
	options := make([]string, len(plans))
	for i, p := range plans {
		options[i] = fmt.Sprintf("%s (%s, %d meals)", p.Name, p.RegisteredAt.Format("2006-01-02"), len(p.Meals))
	}
	idx := s.choose("Select a nutrition plan", options)
	if idx < 0 {
		return nil, nil
	}
	return &plans[idx], nil
}

func (s *shell) progressMenu(ctx context.Context) error {
	active, err := s.contracts.ListActive(ctx)
	if err != nil {
		return err
	}
	selected := s.selectContract(active)
	if selected == nil {
		return nil
	}
	switch s.choose("Progress", []string{
		"Record check-in", "View history", "Cancel a record", "Delete a record",
		"Get photo upload link", "Get photo viewing link",
	}) {
	case 0:
		return s.recordProgress(ctx, selected.Contract.ID)
	case 1:
		history, err := s.progress.History(ctx, selected.Contract.ID)
		if err != nil {
			return err
		}
		for _, r := range history {
			fmt.Printf("%s  %6.1f kg  %-9s %s\n", r.Date.Format("2006-01-02"), r.WeightKg, r.Status, r.Comments)
		}
	case 2, 3:
		history, err := s.progress.History(ctx, selected.Contract.ID)
		if err != nil {
			return err
		}
		if len(history) == 0 {
			fmt.Println("No progress records for this contract.")
			return nil
		}
		options := make([]string, len(history))
		for i, r := range history {
			options[i] = fmt.Sprintf("%s - %.1f kg (%s)", r.Date.Format("2006-01-02"), r.WeightKg, r.Status)
		}
		idx := s.choose("Select a record", options)
		if idx < 0 {
			return nil
		}
		if s.confirm("Delete permanently? (No = soft-cancel)") {
			return s.progress.Delete(ctx, history[idx].ID)
		}
		return s.progress.Cancel(ctx, history[idx].ID)
	case 4:
		contentType := s.prompt("Photo content type (e.g. image/jpeg)")
		resp, err := s.progress.RequestPhotoUploadURL(ctx, selected.Contract.ID, contentType)
		if err != nil {
			return err
		}
		fmt.Printf("\nUpload the photo with an HTTP PUT to:\n%s\n", resp.UploadURL)
		fmt.Printf("Object key to store with the check-in: %s\n", resp.ObjectKey)
	case 5:
		url, err := s.progress.PhotoDownloadURL(ctx, s.prompt("Object key"))
		if err != nil {
			return err
		}
		fmt.Printf("\nTemporary viewing URL:\n%s\n", url)
	}
	return nil
}

func (s *shell) recordProgress(ctx context.Context, contractID primitive.ObjectID) error {
	spec := domain.ProgressSpec{ContractID: contractID}
	spec.WeightKg, _ = strconv.ParseFloat(s.prompt("Weight (kg)"), 64)
	if v := s.prompt("Body fat % (optional)"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			spec.BodyFatPct = &f
		}
	}
	if s.confirm("Add body measurements?") {
		m := &domain.Measurements{}
		for _, field := range []struct {
			label string
			dst   **float64
		}{
			{"Chest (cm)", &m.Chest}, {"Arm (cm)", &m.Arm}, {"Waist (cm)", &m.Waist}, {"Leg (cm)", &m.Leg},
		} {
			if v := s.prompt(field.label + " (optional)"); v != "" {
				if f, err := strconv.ParseFloat(v, 64); err == nil {
					*field.dst = &f
				}
			}
		}
		spec.Measurements = m
	}
	if v := s.prompt("Photo URLs (comma separated, optional)"); v != "" {
		for _, u := range strings.Split(v, ",") {
			spec.PhotoURLs = append(spec.PhotoURLs, strings.TrimSpace(u))
		}
	}
	spec.Comments = s.prompt("Comments (optional)")

	id, err := s.progress.Record(ctx, spec)
	if err != nil {
		return err
	}
	fmt.Printf("Progress record %s saved.\n", id.Hex())
	return nil
}

func (s *shell) financeMenu(ctx context.Context) error {
	choice := s.choose("Finances", []string{"Record income", "Record expense", "Balance report"})
	switch choice {
	case 0, 1:
		isExpense := choice == 1
		input := service.StandaloneTransactionInput{
			Amount:      s.promptFloat("Amount", 0),
			Description: s.prompt("Description"),
		}
		if s.confirm("Link to a client?") {
			client, err := s.selectClient(ctx)
			if err != nil {
				return err
			}
			if client != nil {
				input.ClientID = &client.ID
			}
		}
		var (
			id  primitive.ObjectID
			err error
		)
		if isExpense {
			id, err = s.finance.RecordExpense(ctx, input)
		} else {
			id, err = s.finance.RecordIncome(ctx, input)
		}
		if err != nil {
			return err
		}
		fmt.Printf("Transaction %s recorded.\n", id.Hex())
	case 2:
		return s.balanceReport(ctx)
	}
	return nil
}

func (s *shell) balanceReport(ctx context.Context) error {
	filter := repository.BalanceFilter{}
	var statementClient *domain.Client
	switch s.choose("Scope", []string{"Full history", "Date range", "Single client"}) {
	case 1:
		from, err := time.Parse("2006-01-02", s.prompt("Start date (YYYY-MM-DD)"))
		if err != nil {
			return err
		}
		to, err := time.Parse("2006-01-02", s.prompt("End date (YYYY-MM-DD)"))
		if err != nil {
			return err
		}
		to = to.Add(24*time.Hour - time.Nanosecond)
		filter.From, filter.To = &from, &to
	case 2:
		client, err := s.selectClient(ctx)
		if err != nil || client == nil {
			return err
		}
		filter.ClientID = &client.ID
		statementClient = client
	}

	balance, err := s.finance.Balance(ctx, filter)
	if err != nil {
		return err
	}
	fmt.Println("\n--- Financial Report ---")
	fmt.Printf("Total income:  $%.2f\n", balance.Income)
	fmt.Printf("Total expense: $%.2f\n", balance.Expense)
	fmt.Printf("Net balance:   $%.2f\n", balance.Net())

	if statementClient != nil {
		txns, err := s.finance.ClientStatement(ctx, statementClient.ID)
		if err != nil {
			return err
		}
		for _, t := range txns {
			fmt.Printf("%s  %-8s $%-12.2f %s\n", t.Date.Format("2006-01-02"), t.Kind, t.Amount, t.Description)
		}
	}
	return nil
}
