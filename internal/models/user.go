package models

// User is an account record. Usernames are case-sensitive, assigned at
// registration and never changed; the remaining fields are editable through
// the profile screen. Contact fields are opaque strings and play no part in
// date math.
type User struct {
	Username   string
	Password   string
	FullName   string
	Profession string
	Email      string
	Phone      string
	Timezone   string
}
