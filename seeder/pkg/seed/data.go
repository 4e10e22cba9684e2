package seed

var firstNames = []string{
	"Ana", "Bruno", "Camila", "Daniel", "Eduarda", "Felipe", "Gabriela",
	"Henrique", "Isabela", "Joao", "Larissa", "Marcos", "Natalia", "Otavio",
	"Paula", "Rafael", "Sofia", "Thiago", "Vanessa", "William",
}

var lastNames = []string{
	"Almeida", "Barbosa", "Cardoso", "Dias", "Ferreira", "Gomes", "Lima",
	"Martins", "Nascimento", "Oliveira", "Pereira", "Ribeiro", "Santos",
	"Silva", "Souza", "Teixeira",
}

var partnerNames = []string{
	"Iron Temple Gym", "Flow Yoga Studio", "Peak Crossbox", "Aqua Center",
	"Urban Pilates", "Summit Climbing", "Cadence Cycling Studio",
	"Northside Boxing Club", "Greenfield Tennis Academy", "Pulse Fitness Hub",
}

var activityNames = []string{
	"Functional Training", "Yoga", "Pilates", "Spinning", "Swimming",
	"Boxing", "Climbing", "HIIT", "Tennis", "Weightlifting",
}

var companyNames = []string{
	"Acme Logistics", "Bluewave Software", "Cedar Finance", "Delta Foods",
	"Evergreen Retail", "Falcon Engineering", "Gold Harbor Media",
	"Horizon Telecom",
}

var marketingSources = []string{"google_ads", "meta_ads", "tiktok_ads"}

var missionCatalog = []struct {
	Name        string
	Description string
	Points      int
}{
	{"First Check-in", "Complete your first activity check-in", 50},
	{"Early Bird", "Check in before 8am five times", 100},
	{"Streak Week", "Stay active seven days in a row", 200},
	{"Explorer", "Visit three different partners", 150},
	{"Calorie Crusher", "Burn 5000 calories in a month", 250},
	{"Social Butterfly", "Join a company campaign", 75},
	{"Night Owl", "Check in after 8pm five times", 100},
	{"Marathoner", "Log 1000 active minutes", 300},
}

var rankCatalog = []struct {
	Name   string
	Points int
}{
	{"Bronze", 0},
	{"Silver", 500},
	{"Gold", 1500},
	{"Platinum", 4000},
}

var planCatalog = []struct {
	Name  string
	Price float64
}{
	{"Starter", 49.90},
	{"Growth", 129.90},
	{"Enterprise", 349.90},
}

var healthPointCatalog = []string{"Calories Burned", "Steps", "Active Minutes"}

var stampNames = []string{
	"Consistency", "Dedication", "Overachiever", "Team Player", "Trailblazer",
}
