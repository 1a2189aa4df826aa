package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Tharun-codes/wheelswebb/internal/auth"
	"github.com/Tharun-codes/wheelswebb/internal/config"
	"github.com/Tharun-codes/wheelswebb/internal/db"
	"github.com/Tharun-codes/wheelswebb/internal/models"
)

type seedUser struct {
	Username    string
	Role        string
	Manager     string // username of the manager this user reports to
	Employee    string // username of the employee a dealer submits through
	PasswordEnv string
}

type seedLead struct {
	Creator string // username
	Stage   string
	Name    string
	Mobile  string
	Amount  string
	Type    string
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	client, cols, err := db.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatal(err)
	}
	defer client.Disconnect(context.Background())

	if err := db.EnsureIndexes(ctx, cols); err != nil {
		log.Fatal(err)
	}

	users := []seedUser{
		{Username: "admin", Role: models.RoleAdmin, PasswordEnv: "SEED_ADMIN_PASSWORD"},
		{Username: "suresh.m", Role: models.RoleManager, PasswordEnv: "SEED_USER_PASSWORD"},
		{Username: "ramesh.e", Role: models.RoleEmployee, Manager: "suresh.m", PasswordEnv: "SEED_USER_PASSWORD"},
		{Username: "kiran.e", Role: models.RoleEmployee, Manager: "suresh.m", PasswordEnv: "SEED_USER_PASSWORD"},
		{Username: "sharma.motors", Role: models.RoleDealer, Employee: "ramesh.e", Manager: "suresh.m", PasswordEnv: "SEED_USER_PASSWORD"},
		{Username: "city.cars", Role: models.RoleDealer, Employee: "kiran.e", Manager: "suresh.m", PasswordEnv: "SEED_USER_PASSWORD"},
	}

	ids := make(map[string]string, len(users))
	for _, u := range users {
		password := os.Getenv(u.PasswordEnv)
		if password == "" {
			password = "changeme"
		}
		hash, err := auth.HashPassword(password)
		if err != nil {
			log.Fatal(err)
		}

		now := time.Now().In(cfg.Timezone)
		doc := bson.M{
			"_id":          primitive.NewObjectID().Hex(),
			"username":     u.Username,
			"passwordHash": hash,
			"role":         u.Role,
			"createdAt":    now,
			"updatedAt":    now,
		}
		if u.Manager != "" {
			doc["managerId"] = ids[u.Manager]
		}
		if u.Employee != "" {
			doc["employeeId"] = ids[u.Employee]
		}

		filter := bson.M{"username": u.Username}
		update := bson.M{"$setOnInsert": doc}
		if _, err := cols.Users.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true)); err != nil {
			log.Fatal(err)
		}

		var stored models.User
		if err := cols.Users.FindOne(ctx, filter).Decode(&stored); err != nil {
			log.Fatal(err)
		}
		ids[u.Username] = stored.ID
		log.Printf("user %s (%s): %s", u.Username, u.Role, stored.ID)
	}

	sample := []seedLead{
		{Creator: "ramesh.e", Stage: "Disbursed", Name: "Ram Kumar", Mobile: "9876500011", Amount: "450000", Type: "Used Car Loan"},
		{Creator: "ramesh.e", Stage: "Login", Name: "Anita Devi", Mobile: "9876500012", Amount: "320000", Type: "Used Car Loan"},
		{Creator: "kiran.e", Stage: "Sanctioned", Name: "Vijay Singh", Mobile: "9876500013", Amount: "600000", Type: "New Car Loan"},
		{Creator: "sharma.motors", Stage: "Disbursed", Name: "Prakash Rao", Mobile: "9876500014", Amount: "275000", Type: "Used Car Loan"},
		{Creator: "city.cars", Stage: "Rejected", Name: "Meena Kumari", Mobile: "9876500015", Amount: "150000", Type: "Two Wheeler Loan"},
		{Creator: "suresh.m", Stage: "Disbursed", Name: "Arjun Patel", Mobile: "9876500016", Amount: "820000", Type: "New Car Loan"},
	}

	for i, l := range sample {
		creator := ids[l.Creator]
		if creator == "" {
			log.Fatalf("unknown seed creator %s", l.Creator)
		}

		var creatorUser models.User
		if err := cols.Users.FindOne(ctx, bson.M{"_id": creator}).Decode(&creatorUser); err != nil {
			log.Fatal(err)
		}

		loanID := fmt.Sprintf("seed-%03d", i+1)
		now := time.Now().In(cfg.Timezone)
		doc := bson.M{
			"_id":          primitive.NewObjectID().Hex(),
			"loan_id":      loanID,
			"created_by":   creatorUser.ID,
			"creator_role": creatorUser.Role,
			"data": bson.M{
				"name":       l.Name,
				"mobile":     l.Mobile,
				"loanAmount": l.Amount,
				"loanType":   l.Type,
				"loanStage":  l.Stage,
			},
			"createdAt": now,
			"updatedAt": now,
		}
		switch creatorUser.Role {
		case models.RoleManager:
			doc["manager_id"] = creatorUser.ID
		case models.RoleEmployee:
			doc["employee_id"] = creatorUser.ID
			doc["manager_id"] = creatorUser.ManagerID
		case models.RoleDealer:
			doc["employee_id"] = creatorUser.EmployeeID
			doc["manager_id"] = creatorUser.ManagerID
		}

		filter := bson.M{"loan_id": loanID}
		update := bson.M{"$setOnInsert": doc}
		if _, err := cols.Leads.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true)); err != nil {
			log.Fatal(err)
		}
		log.Printf("lead %s (%s, %s)", loanID, l.Name, l.Stage)
	}

	log.Println("seed complete")
}
