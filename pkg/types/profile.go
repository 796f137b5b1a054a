package types

// ProfileKey is the fixed sentinel key under which the singleton local
// profile snapshot is stored.
const ProfileKey = "userProfile"

// User is the authoritative profile row from the backend users table.
// Held in memory only; the local store never persists it.
type User struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	DeliveryAddress string `json:"delivery_address"`
}

// CanOrder reports whether the profile carries the contact fields an order
// submission requires.
func (u User) CanOrder() bool {
	return u.Phone != "" && u.DeliveryAddress != ""
}

// Profile is the locally cached profile snapshot. It may hold a subset of
// the authoritative fields plus PicturePath, which exists only locally (the
// selected image is never uploaded). The authoritative User wins for any
// field both hold.
type Profile struct {
	Name            string `json:"name"`
	Phone           string `json:"phone"`
	DeliveryAddress string `json:"delivery_address"`
	PicturePath     string `json:"picture_path"`
}

// ProfileUpdate carries the profile fields a user may edit on the backend.
type ProfileUpdate struct {
	Name            string `json:"name"`
	Phone           string `json:"phone"`
	DeliveryAddress string `json:"delivery_address"`
}

// MergeUser overlays the authoritative user onto the snapshot and returns
// the merged view. Non-empty user fields win; PicturePath is always kept
// from the snapshot.
func (p Profile) MergeUser(u User) Profile {
	merged := p
	if u.Name != "" {
		merged.Name = u.Name
	}
	if u.Phone != "" {
		merged.Phone = u.Phone
	}
	if u.DeliveryAddress != "" {
		merged.DeliveryAddress = u.DeliveryAddress
	}
	return merged
}
