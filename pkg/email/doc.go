// Package email sends plain-text transactional messages.
//
// Two senders implement the Sender interface:
//
//   - the Postmark sender, built on github.com/mrz1836/postmark, used when a
//     server token is configured;
//   - the log sender, which writes the message to a slog.Logger instead of
//     delivering it. It is the default in development and tests.
//
// # Configuration
//
// Config is populated from environment variables via
// github.com/caarlos0/env:
//
//	POSTMARK_SERVER_TOKEN   server API token; empty disables delivery
//	POSTMARK_ACCOUNT_TOKEN  account API token (optional)
//	SENDER_EMAIL            From address, noreply@memberkit.local by default
//
// # Usage
//
// New picks the sender from the configuration:
//
//	var cfg email.Config
//	if err := config.Load(&cfg); err != nil {
//	    return err
//	}
//	sender, err := email.New(cfg, log)
//	if err != nil {
//	    return err
//	}
//
//	err = sender.Send(ctx, email.Message{
//	    To:       "ops@example.com",
//	    Subject:  "Basic quota reached: goals",
//	    TextBody: "Member u1 on the Basic tier used 3 of 3 goals.",
//	    Tag:      "limit-reached",
//	})
//
// Every sender validates the message before doing anything else: the
// recipient must parse as an RFC 5322 address, and the subject and body must
// not be blank.
//
// # Errors
//
//   - ErrInvalidMessage: the message failed validation.
//   - ErrInvalidConfig: the Postmark sender lacks a server token or a valid
//     sender address.
//   - ErrFailedToSend: the Postmark API rejected the message or could not be
//     reached. The API error is joined to it.
//
// Error values use translation-key style strings ("email.errors.*") so they
// can be mapped to user-facing messages.
//
// # See Also
//
//   - https://github.com/mrz1836/postmark, the Postmark client
//   - internal/notify, which emails operators when a member exhausts a quota
package email
