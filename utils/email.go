package utils

import (
	"bytes"
	"html/template"
	"io"
	"log"
	"os"
	"strconv"
	"time"

	"gopkg.in/gomail.v2"
)

type ReservationTicketLine struct {
	Play     string
	ShowTime time.Time
	Row      int
	Seat     int
}

type ReservationConfirmationData struct {
	PublicCode string
	Tickets    []ReservationTicketLine
}

var confirmationTmpl = template.Must(template.New("reservation_confirmation").Parse(`
<h2>Your reservation {{.PublicCode}} is confirmed</h2>
<table>
  <tr><th>Play</th><th>Show time</th><th>Row</th><th>Seat</th></tr>
  {{range .Tickets}}
  <tr><td>{{.Play}}</td><td>{{.ShowTime.Format "2006-01-02 15:04"}}</td><td>{{.Row}}</td><td>{{.Seat}}</td></tr>
  {{end}}
</table>
<p>Show the attached QR code at the entrance.</p>
`))

// SendReservationConfirmation emails the booking summary with a QR code of
// the public code attached. Runs async and is a no-op without SMTP config,
// so it never delays or fails the reservation response.
func SendReservationConfirmation(to string, data ReservationConfirmationData) {
	host := os.Getenv("SMTP_HOST")
	if host == "" || to == "" {
		return
	}

	go func() {
		var body bytes.Buffer
		if err := confirmationTmpl.Execute(&body, data); err != nil {
			log.Printf("failed to render confirmation email: %v", err)
			return
		}

		qr, err := GenerateQRCode(data.PublicCode, 256)
		if err != nil {
			log.Printf("failed to generate reservation QR: %v", err)
			return
		}

		port, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))

		m := gomail.NewMessage()
		m.SetHeader("From", os.Getenv("SMTP_FROM"))
		m.SetHeader("To", to)
		m.SetHeader("Subject", "Reservation "+data.PublicCode)
		m.SetBody("text/html", body.String())
		m.Attach(data.PublicCode+".png", gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(qr)
			return err
		}))

		d := gomail.NewDialer(host, port, os.Getenv("SMTP_USERNAME"), os.Getenv("SMTP_PASSWORD"))
		if err := d.DialAndSend(m); err != nil {
			log.Printf("failed to send confirmation email: %v", err)
		}
	}()
}
