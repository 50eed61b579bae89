package service

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"path/filepath"
	"time"

	"stayspot/internal/db"
	"stayspot/internal/entities"
)

// SenderService delivers booking confirmations to guests. Email always,
// SMS only when the guest has a phone number on file. Both are sent
// asynchronously; failures are logged, never propagated.
type SenderService struct {
}

func NewSenderService() *SenderService {
	return &SenderService{}
}

func (s *SenderService) BookingConfirmed(guest *db.User, spot *db.Spot, booking *db.Booking) {
	s.sendBookingEmail(guest, spot, booking)
	if guest.Phone.Valid {
		s.sendBookingSMS(guest, spot, booking)
	}
}

func (s *SenderService) sendBookingEmail(guest *db.User, spot *db.Spot, booking *db.Booking) {
	emailData := entities.BookingEmailData{
		GuestName:          guest.FirstName,
		SpotName:           spot.Name,
		SpotAddress:        spot.Address,
		SpotCity:           spot.City,
		StartDateFormatted: booking.StartDate.Format("02 Jan 2006"),
		EndDateFormatted:   booking.EndDate.Format("02 Jan 2006"),
		CurrentYear:        time.Now().UTC().Year(),
	}

	emailSubject := fmt.Sprintf("Your StaySpot booking at %s is confirmed", spot.Name)
	plainTextBody := fmt.Sprintf(
		"Hello %s,\n\nYour booking at %s is confirmed.\n\n"+
			"Booking details:\n"+
			"Spot: %s\n"+
			"Address: %s, %s\n"+
			"Check-in: %s\n"+
			"Check-out: %s\n\n"+
			"Thank you for choosing StaySpot.\n\n"+
			"StaySpot. All rights reserved.",
		emailData.GuestName, emailData.SpotName, emailData.SpotName,
		emailData.SpotAddress, emailData.SpotCity,
		emailData.StartDateFormatted, emailData.EndDateFormatted,
	)

	tmplPath := filepath.Join("internal", "templates", "booking_email.html")
	tmpl, err := template.ParseFiles(tmplPath)
	if err != nil {
		log.Printf("ALERT: Failed to parse booking email template (%s): %v", tmplPath, err)
		return
	}

	var htmlBodyBuffer bytes.Buffer
	if err := tmpl.Execute(&htmlBodyBuffer, emailData); err != nil {
		log.Printf("ALERT: Failed to execute booking email template for booking %d: %v", booking.ID, err)
	}
	htmlBody := htmlBodyBuffer.String()

	go func(toEmail, toName, subject, plainBody, htmlBodyContent string) {
		if errEmail := SendEmailWithSendGrid(toEmail, toName, subject, plainBody, htmlBodyContent); errEmail != nil {
			log.Printf("ALERT (async): Confirmation email for booking %d failed: %v", booking.ID, errEmail)
		}
	}(guest.Email, guest.FirstName, emailSubject, plainTextBody, htmlBody)
}

func (s *SenderService) sendBookingSMS(guest *db.User, spot *db.Spot, booking *db.Booking) {
	smsMessage := fmt.Sprintf("StaySpot: Your booking at %s is confirmed!\nCheck-in: %s.\nMore details in your email.",
		spot.Name,
		booking.StartDate.Format("02/01/2006"),
	)

	go func(toNumber, body string) {
		if errSMS := SendSMS(toNumber, body); errSMS != nil {
			log.Printf("ALERT (async): Booking %d was created, but the confirmation SMS to %s failed: %v", booking.ID, toNumber, errSMS)
		}
	}(guest.Phone.String, smsMessage)
}
