package jellyfin

import (
	"encoding/json"
	"fmt"
)

// User represents a Jellyfin user account.
type User struct {
	Name                      string            `json:"Name"`
	ServerID                  string            `json:"ServerId"`
	ServerName                *string           `json:"ServerName,omitempty"`
	ID                        string            `json:"Id"`
	PrimaryImageTag           *string           `json:"PrimaryImageTag,omitempty"`
	HasPassword               bool              `json:"HasPassword"`
	HasConfiguredPassword     bool              `json:"HasConfiguredPassword"`
	HasConfiguredEasyPassword bool              `json:"HasConfiguredEasyPassword"`
	EnableAutoLogin           bool              `json:"EnableAutoLogin"`
	LastLoginDate             *string           `json:"LastLoginDate,omitempty"`
	LastActivityDate          *string           `json:"LastActivityDate,omitempty"`
	Configuration             UserConfiguration `json:"Configuration"`
	Policy                    UserPolicy        `json:"Policy"`
	PrimaryImageAspectRatio   *float64          `json:"PrimaryImageAspectRatio,omitempty"`
}

// UserConfiguration holds per-user display and playback preferences.
// It has no lifecycle of its own; it lives and dies with its user.
type UserConfiguration struct {
	AudioLanguagePreference    *string      `json:"AudioLanguagePreference,omitempty"`
	PlayDefaultAudioTrack      bool         `json:"PlayDefaultAudioTrack"`
	SubtitleLanguagePreference string       `json:"SubtitleLanguagePreference"`
	DisplayMissingEpisodes     bool         `json:"DisplayMissingEpisodes"`
	GroupedFolders             []string     `json:"GroupedFolders"`
	SubtitleMode               SubtitleMode `json:"SubtitleMode"`
	DisplayCollectionsView     bool         `json:"DisplayCollectionsView"`
	EnableLocalPassword        bool         `json:"EnableLocalPassword"`
	OrderedViews               []string     `json:"OrderedViews"`
	LatestItemsExcludes        []string     `json:"LatestItemsExcludes"`
	MyMediaExcludes            []string     `json:"MyMediaExcludes"`
	HidePlayedInLatest         bool         `json:"HidePlayedInLatest"`
	RememberAudioSelections    bool         `json:"RememberAudioSelections"`
	RememberSubtitleSelections bool         `json:"RememberSubtitleSelections"`
	EnableNextEpisodeAutoPlay  bool         `json:"EnableNextEpisodeAutoPlay"`
}

// UserPolicy holds per-user permissions and access restrictions.
type UserPolicy struct {
	IsAdministrator                  bool             `json:"IsAdministrator"`
	IsHidden                         bool             `json:"IsHidden"`
	IsDisabled                       bool             `json:"IsDisabled"`
	MaxParentalRating                *int64           `json:"MaxParentalRating,omitempty"`
	BlockedTags                      []string         `json:"BlockedTags"`
	EnableUserPreferenceAccess       bool             `json:"EnableUserPreferenceAccess"`
	AccessSchedules                  []AccessSchedule `json:"AccessSchedules"`
	BlockUnratedItems                []string         `json:"BlockUnratedItems"`
	EnableRemoteControlOfOtherUsers  bool             `json:"EnableRemoteControlOfOtherUsers"`
	EnableSharedDeviceControl        bool             `json:"EnableSharedDeviceControl"`
	EnableRemoteAccess               bool             `json:"EnableRemoteAccess"`
	EnableLiveTvManagement           bool             `json:"EnableLiveTvManagement"`
	EnableLiveTvAccess               bool             `json:"EnableLiveTvAccess"`
	EnableMediaPlayback              bool             `json:"EnableMediaPlayback"`
	EnableAudioPlaybackTranscoding   bool             `json:"EnableAudioPlaybackTranscoding"`
	EnableVideoPlaybackTranscoding   bool             `json:"EnableVideoPlaybackTranscoding"`
	EnablePlaybackRemuxing           bool             `json:"EnablePlaybackRemuxing"`
	ForceRemoteSourceTranscoding     bool             `json:"ForceRemoteSourceTranscoding"`
	EnableContentDeletion            bool             `json:"EnableContentDeletion"`
	EnableContentDeletionFromFolders []string         `json:"EnableContentDeletionFromFolders"`
	EnableContentDownloading         bool             `json:"EnableContentDownloading"`
	EnableSyncTranscoding            bool             `json:"EnableSyncTranscoding"`
	EnableMediaConversion            bool             `json:"EnableMediaConversion"`
	EnabledDevices                   []string         `json:"EnabledDevices"`
	EnableAllDevices                 bool             `json:"EnableAllDevices"`
	EnabledChannels                  []string         `json:"EnabledChannels"`
	EnableAllChannels                bool             `json:"EnableAllChannels"`
	EnabledFolders                   []string         `json:"EnabledFolders"`
	EnableAllFolders                 bool             `json:"EnableAllFolders"`
	InvalidLoginAttemptCount         int64            `json:"InvalidLoginAttemptCount"`
	LoginAttemptsBeforeLockout       int64            `json:"LoginAttemptsBeforeLockout"`
	MaxActiveSessions                int64            `json:"MaxActiveSessions"`
	EnablePublicSharing              bool             `json:"EnablePublicSharing"`
	BlockedMediaFolders              []string         `json:"BlockedMediaFolders"`
	BlockedChannels                  []string         `json:"BlockedChannels"`
	RemoteClientBitrateLimit         int64            `json:"RemoteClientBitrateLimit"`
	AuthenticationProviderID         string           `json:"AuthenticationProviderId"`
	PasswordResetProviderID          string           `json:"PasswordResetProviderId"`
	SyncPlayAccess                   string           `json:"SyncPlayAccess"`
}

// AccessSchedule restricts a user's access to a window within a day.
type AccessSchedule struct {
	UserID    string `json:"UserId"`
	DayOfWeek string `json:"DayOfWeek"`
	StartHour int64  `json:"StartHour"`
	EndHour   int64  `json:"EndHour"`
}

// Session is the stored result of a successful authentication call.
// A session is immutable once obtained; authentication replaces it
// wholesale. A nil session means the client is unauthenticated.
type Session struct {
	User        User        `json:"User"`
	SessionInfo SessionInfo `json:"SessionInfo"`
	AccessToken string      `json:"AccessToken"`
	ServerID    string      `json:"ServerId"`
}

// SessionInfo describes an active session on the server.
type SessionInfo struct {
	ID                    string   `json:"Id"`
	UserID                string   `json:"UserId"`
	UserName              string   `json:"UserName"`
	Client                string   `json:"Client"`
	DeviceName            string   `json:"DeviceName"`
	DeviceID              string   `json:"DeviceId"`
	ApplicationVersion    string   `json:"ApplicationVersion"`
	RemoteEndPoint        string   `json:"RemoteEndPoint,omitempty"`
	LastActivityDate      string   `json:"LastActivityDate,omitempty"`
	IsActive              bool     `json:"IsActive"`
	SupportsRemoteControl bool     `json:"SupportsRemoteControl"`
	PlayableMediaTypes    []string `json:"PlayableMediaTypes,omitempty"`
	SupportedCommands     []string `json:"SupportedCommands,omitempty"`
}

// PublicSystemInfo is the unauthenticated server identity response.
type PublicSystemInfo struct {
	ID              string `json:"Id"`
	ServerName      string `json:"ServerName"`
	ProductName     string `json:"ProductName,omitempty"`
	Version         string `json:"Version"`
	OperatingSystem string `json:"OperatingSystem,omitempty"`
	LocalAddress    string `json:"LocalAddress,omitempty"`
}

// SubtitleMode controls when subtitles are displayed for a user.
// It is a closed enumeration; the wire representation is the mode name
// as a plain string and unknown strings fail decoding.
type SubtitleMode int

const (
	SubtitleModeDefault SubtitleMode = iota
	SubtitleModeAlways
	SubtitleModeOnlyForced
	SubtitleModeNone
	SubtitleModeSmart
)

var subtitleModeNames = map[SubtitleMode]string{
	SubtitleModeDefault:    "Default",
	SubtitleModeAlways:     "Always",
	SubtitleModeOnlyForced: "OnlyForced",
	SubtitleModeNone:       "None",
	SubtitleModeSmart:      "Smart",
}

// String returns the wire name of the mode.
func (m SubtitleMode) String() string {
	if name, ok := subtitleModeNames[m]; ok {
		return name
	}
	return "Unknown"
}

// ParseSubtitleMode converts a wire name into a SubtitleMode.
func ParseSubtitleMode(s string) (SubtitleMode, error) {
	for mode, name := range subtitleModeNames {
		if name == s {
			return mode, nil
		}
	}
	return SubtitleModeDefault, fmt.Errorf("invalid subtitle mode: %q", s)
}

// MarshalJSON implements json.Marshaler.
func (m SubtitleMode) MarshalJSON() ([]byte, error) {
	name, ok := subtitleModeNames[m]
	if !ok {
		return nil, fmt.Errorf("invalid subtitle mode: %d", m)
	}
	return json.Marshal(name)
}

// UnmarshalJSON implements json.Unmarshaler.
func (m *SubtitleMode) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	mode, err := ParseSubtitleMode(name)
	if err != nil {
		return err
	}
	*m = mode
	return nil
}
