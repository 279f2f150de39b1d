package resend

import (
	"context"
	"fmt"
	"log"
	"os"

	"cloud.google.com/go/firestore"
	resend "github.com/resend/resend-go/v2"
)

const accessDocPath = "AdminAccess/london-titans"

// Service sends admin access mail and records which users hold access.
type Service struct {
	firestoreClient *firestore.Client
	resendClient    *resend.Client
	hostURL         string
}

// NewService creates a mail service. The Resend API key is read from the
// RESEND_KEY environment variable.
func NewService(firestoreClient *firestore.Client, hostURL string) *Service {
	resendKey := os.Getenv("RESEND_KEY")
	return &Service{
		firestoreClient: firestoreClient,
		resendClient:    resend.NewClient(resendKey),
		hostURL:         hostURL,
	}
}

// SendAccessMail mails the admin panel access link to the given address.
func (s *Service) SendAccessMail(ctx context.Context, email, accessCode string) error {
	body := accessMailTemplate(fmt.Sprintf("%s/admin/access/%s", s.hostURL, accessCode))
	params := &resend.SendEmailRequest{
		From:    "fixtures@londontitansfc.com",
		To:      []string{email},
		Subject: "Your fixtures admin access link",
		Html:    body,
	}

	if _, err := s.resendClient.Emails.Send(params); err != nil {
		log.Printf("Failed to send access mail: %v\n", err)
		return err
	}
	return nil
}

// GrantAccess records the user id on the access document, once.
func (s *Service) GrantAccess(ctx context.Context, userID string) error {
	docRef := s.firestoreClient.Doc(accessDocPath)

	err := s.firestoreClient.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(docRef)
		if err != nil {
			return err
		}

		var allowedUsers []string
		if data, err := doc.DataAt("allowedUsers"); err == nil {
			if users, ok := data.([]interface{}); ok {
				for _, user := range users {
					if userStr, ok := user.(string); ok {
						allowedUsers = append(allowedUsers, userStr)
					}
				}
			}
		}

		for _, user := range allowedUsers {
			if user == userID {
				// Already granted, nothing to update.
				return nil
			}
		}

		return tx.Update(docRef, []firestore.Update{
			{Path: "allowedUsers", Value: append(allowedUsers, userID)},
		})
	})
	if err != nil {
		log.Printf("Failed to update access document: %v\n", err)
	}
	return err
}

func accessMailTemplate(url string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <style>
        body {
            font-family: Arial, sans-serif;
            background-color: #26241E;
            margin: 0;
            padding: 20px;
        }
        .container {
            background-color: #ffffff;
            max-width: 600px;
            margin: 0 auto;
            padding: 20px;
            box-shadow: 0 0 10px rgba(0,0,0,0.1);
        }
        .button {
            display: block;
            width: 220px;
            height: 50px;
            margin: 20px auto;
            background-color: #FFD102;
            color: #26241E;
            font-size: 16px;
            text-align: center;
            line-height: 50px;
            text-decoration: none;
            border-radius: 5px;
        }
    </style>
</head>
<body>
    <div class="container">
        <h2>Hello,</h2>
        <p>Use the button below to open the fixtures admin panel:</p>
        <a href="%s" class="button">Open Admin Panel</a>
        <p>Up the Titans,<br>London Titans FC</p>
    </div>
</body>
</html>`, url)
}
