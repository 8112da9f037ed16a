package initdata

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// User is the Mini App user object embedded as JSON in the user and
// receiver fields.
type User struct {
	ID                    int64  `json:"id"`
	IsBot                 bool   `json:"is_bot,omitempty"`
	FirstName             string `json:"first_name"`
	LastName              string `json:"last_name,omitempty"`
	Username              string `json:"username,omitempty"`
	LanguageCode          string `json:"language_code,omitempty"`
	IsPremium             bool   `json:"is_premium,omitempty"`
	AddedToAttachmentMenu bool   `json:"added_to_attachment_menu,omitempty"`
	AllowsWriteToPM       bool   `json:"allows_write_to_pm,omitempty"`
	PhotoURL              string `json:"photo_url,omitempty"`
}

// Chat is the chat object embedded as JSON in the chat field.
type Chat struct {
	ID       int64  `json:"id"`
	Type     string `json:"type"`
	Title    string `json:"title"`
	Username string `json:"username,omitempty"`
	PhotoURL string `json:"photo_url,omitempty"`
}

// InitData is the typed form of a decoded init data payload. Recognized
// fields get typed access; anything the platform adds later lands in Extra
// untouched, so newer payloads never break older consumers.
type InitData struct {
	QueryID      string        `json:"query_id,omitempty"`
	User         *User         `json:"user,omitempty"`
	Receiver     *User         `json:"receiver,omitempty"`
	Chat         *Chat         `json:"chat,omitempty"`
	ChatType     string        `json:"chat_type,omitempty"`
	ChatInstance string        `json:"chat_instance,omitempty"`
	StartParam   string        `json:"start_param,omitempty"`
	CanSendAfter time.Duration `json:"-"`
	AuthDate     time.Time     `json:"-"`
	Hash         string        `json:"hash,omitempty"`
	Signature    string        `json:"signature,omitempty"`

	// Extra holds unrecognized fields verbatim.
	Extra map[string]string `json:"extra,omitempty"`
}

// Parse decodes raw into its typed form. It applies per-field decoding only;
// it does not authenticate — callers that need both should Validate first.
func Parse(raw string) (*InitData, error) {
	fields, err := Decode(raw)
	if err != nil {
		return nil, err
	}
	return parseFields(fields)
}

func parseFields(fields Fields) (*InitData, error) {
	d := &InitData{}
	for _, p := range fields {
		switch p.Key {
		case "query_id":
			d.QueryID = p.Value
		case "user":
			u, err := parseUser(p.Key, p.Value)
			if err != nil {
				return nil, err
			}
			d.User = u
		case "receiver":
			u, err := parseUser(p.Key, p.Value)
			if err != nil {
				return nil, err
			}
			d.Receiver = u
		case "chat":
			var c Chat
			if err := json.Unmarshal([]byte(p.Value), &c); err != nil {
				return nil, fmt.Errorf("%w: field %q is not a valid chat object: %v", ErrMalformedInput, p.Key, err)
			}
			d.Chat = &c
		case "chat_type":
			d.ChatType = p.Value
		case "chat_instance":
			d.ChatInstance = p.Value
		case "start_param":
			d.StartParam = p.Value
		case "can_send_after":
			secs, err := parseIntField(p.Key, p.Value)
			if err != nil {
				return nil, err
			}
			d.CanSendAfter = time.Duration(secs) * time.Second
		case "auth_date":
			unix, err := parseIntField(p.Key, p.Value)
			if err != nil {
				return nil, err
			}
			d.AuthDate = time.Unix(unix, 0).UTC()
		case hashField:
			d.Hash = p.Value
		case signatureField:
			d.Signature = p.Value
		default:
			if d.Extra == nil {
				d.Extra = make(map[string]string)
			}
			d.Extra[p.Key] = p.Value
		}
	}
	return d, nil
}

func parseUser(field, value string) (*User, error) {
	var u User
	if err := json.Unmarshal([]byte(value), &u); err != nil {
		return nil, fmt.Errorf("%w: field %q is not a valid user object: %v", ErrMalformedInput, field, err)
	}
	return &u, nil
}

// parseIntField parses a non-negative integer field value.
func parseIntField(field, value string) (int64, error) {
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: field %q is not an integer", ErrMalformedInput, field)
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: field %q is negative", ErrMalformedInput, field)
	}
	return n, nil
}
