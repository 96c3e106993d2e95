package model

// Customer is customer model entity
type Customer struct {
	CustomerID               string   `json:"customer_id"`
	Name                     string   `json:"name"`
	Email                    string   `json:"email"`
	Phone                    string   `json:"phone"`
	Address                  string   `json:"address"`
	RegistrationDate         Date     `json:"registration_date"`
	DateOfBirth              *Date    `json:"date_of_birth"`
	Notes                    *string  `json:"notes"`
	TotalPurchases           int      `json:"total_purchases"`
	LifetimeValue            float64  `json:"lifetime_value"`
	SupportCasesCount        int      `json:"support_cases_count"`
	CommunicationPreferences []string `json:"communication_preferences"`
}
