package db

import (
	"fmt"
	"log"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"golang.org/x/crypto/bcrypt"

	"github.com/sahtee/clinic-booking/models"
)

// SeedRBAC creates the booking roles and capabilities if missing.
func SeedRBAC() {
	permissions := []models.Permission{
		{Name: models.CapCanBook, Description: "Book and cancel own appointments", Resource: "appointments", Action: "create"},
		{Name: models.CapBookSys, Description: "Manage schedules, availability and appointment statuses", Resource: "schedules", Action: "update"},
		{Name: models.CapManageBookings, Description: "Administer all bookings, including hard delete", Resource: "appointments", Action: "delete"},
	}
	for _, p := range permissions {
		var existing models.Permission
		if DB.Where("name = ?", p.Name).First(&existing).RowsAffected == 0 {
			DB.Create(&p)
		}
	}

	roles := map[string]string{
		"patient":  "Books appointments for themselves or their children",
		"provider": "Specialist offering bookable slots",
		"admin":    "Administrator with full booking access",
	}
	grants := map[string][]string{
		"patient":  {models.CapCanBook},
		"provider": {models.CapBookSys},
		"admin":    {models.CapCanBook, models.CapBookSys, models.CapManageBookings},
	}

	for name, description := range roles {
		var role models.Role
		if DB.Where("name = ?", name).First(&role).RowsAffected == 0 {
			role = models.Role{Name: name, Description: description}
			DB.Create(&role)
		}
		var perms []models.Permission
		DB.Where("name IN ?", grants[name]).Find(&perms)
		DB.Model(&role).Association("Permissions").Replace(perms)
	}

	fmt.Println("✅ Roles and capabilities seeded!")
}

// SeedDemo populates a small demo dataset: providers with weekly
// schedules and patients with children. Intended for local development
// only.
func SeedDemo() {
	var patientRole, providerRole models.Role
	if err := DB.Where("name = ?", "patient").First(&patientRole).Error; err != nil {
		log.Fatal("Seed RBAC before seeding demo data: ", err)
	}
	if err := DB.Where("name = ?", "provider").First(&providerRole).Error; err != nil {
		log.Fatal("Seed RBAC before seeding demo data: ", err)
	}

	hashed, _ := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)

	specializations := []string{"dysgraphia", "speech-therapy", "pediatric-neurology", "orthophony"}

	for i := 0; i < 5; i++ {
		provider := models.User{
			Name:     gofakeit.Name(),
			Email:    gofakeit.Email(),
			Password: string(hashed),
			Phone:    gofakeit.Phone(),
			RoleID:   providerRole.ID,
		}
		if err := DB.Create(&provider).Error; err != nil {
			continue
		}

		profile := models.ProviderProfile{
			UserID:          provider.ID,
			Specialization:  specializations[i%len(specializations)],
			Bio:             gofakeit.Sentence(12),
			SlotDuration:    30,
			IsAvailable:     true,
			ConsultationFee: float64(gofakeit.Number(1500, 4000)),
			City:            gofakeit.City(),
			ClinicName:      gofakeit.Company(),
		}
		if err := DB.Create(&profile).Error; err != nil {
			continue
		}

		// Sunday through Thursday, 09:00-12:00 and 13:00-17:00.
		for day := 0; day <= 4; day++ {
			DB.Create(&models.ProviderSchedule{
				ProviderProfileID: profile.ID,
				DayOfWeek:         models.DayOfWeek(day),
				StartTime:         "09:00",
				EndTime:           "12:00",
				SlotDuration:      30,
				IsActive:          true,
			})
			DB.Create(&models.ProviderSchedule{
				ProviderProfileID: profile.ID,
				DayOfWeek:         models.DayOfWeek(day),
				StartTime:         "13:00",
				EndTime:           "17:00",
				SlotDuration:      30,
				IsActive:          true,
			})
		}
	}

	for i := 0; i < 10; i++ {
		patient := models.User{
			Name:     gofakeit.Name(),
			Email:    gofakeit.Email(),
			Password: string(hashed),
			Phone:    gofakeit.Phone(),
			RoleID:   patientRole.ID,
		}
		if err := DB.Create(&patient).Error; err != nil {
			continue
		}
		for j := 0; j < gofakeit.Number(0, 2); j++ {
			DB.Create(&models.Child{
				UserID:      patient.ID,
				Name:        gofakeit.FirstName(),
				DateOfBirth: gofakeit.DateRange(time.Now().AddDate(-12, 0, 0), time.Now().AddDate(-2, 0, 0)),
				Gender:      gofakeit.RandomString([]string{"male", "female"}),
			})
		}
	}

	fmt.Println("✅ Demo data seeded!")
}
