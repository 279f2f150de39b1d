package main

import (
	"context"
	"log"
	"os"
	"strings"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"google.golang.org/api/option"

	adminstore "github.com/londontitans/fixtures-sync/repos/adminstore"
	gcal "github.com/londontitans/fixtures-sync/repos/gcal"
	resend "github.com/londontitans/fixtures-sync/repos/resend"

	auth "github.com/londontitans/fixtures-sync/pkg/auth"

	admin "github.com/londontitans/fixtures-sync/services/admin"
	fixtures "github.com/londontitans/fixtures-sync/services/fixtures"
)

// The club's public Google Calendar export, overridable via CALENDAR_ID.
const defaultCalendarID = "0e4368f85d71837c99e423a3348962f82dd366354fb1450cb4c9430c95197ce3@group.calendar.google.com"

func main() {
	ctx := context.Background()

	projectID := os.Getenv("FIREBASE_PROJECT_ID")
	credentialsJSON := os.Getenv("FIREBASE_CREDENTIALS_JSON")
	port := os.Getenv("PORT")
	allowOrigins := os.Getenv("CORS_HOSTS")
	hostURL := os.Getenv("HOST_URL")
	calendarID := os.Getenv("CALENDAR_ID")
	if calendarID == "" {
		calendarID = defaultCalendarID
	}

	credentialsOption := option.WithCredentialsJSON([]byte(credentialsJSON))

	firestoreClient, err := firestore.NewClient(ctx, projectID, credentialsOption)
	if err != nil {
		log.Fatalf("Failed to create Firestore client: %v", err)
	}
	defer firestoreClient.Close()

	firebaseApp, err := firebase.NewApp(ctx, nil, credentialsOption)
	if err != nil {
		log.Fatalf("error initializing app: %v\n", err)
	}

	feedService := gcal.NewService(calendarID)
	store := adminstore.NewStore(firestoreClient)
	resendService := resend.NewService(firestoreClient, hostURL)

	fixturesService := fixtures.NewFixturesService(feedService, store)
	adminService := admin.NewAdminService(store, firestoreClient, resendService)

	config := cors.DefaultConfig()
	config.AllowOrigins = strings.Split(allowOrigins, ",")
	config.AllowCredentials = true
	config.AllowMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Access-Control-Allow-Origin"}

	router := gin.Default()
	router.Use(cors.New(config))

	fixturesRouter := router.Group("/fixtures/v1")

	adminRouter := router.Group("/admin/v1")
	adminRouter.Use(auth.AuthMiddleware(firebaseApp))

	fixtures.NewHTTPHandler(fixtures.HTTPOptions{
		Service: fixturesService,
		Router:  fixturesRouter,
	})

	admin.NewHTTPHandler(admin.HTTPOptions{
		Service: adminService,
		Router:  adminRouter,
	})

	log.Fatal(router.Run(":" + port))
}
