package common

// AccessTokenHeaderName is the gRPC metadata key used to carry the access
// token on outbound requests.
const AccessTokenHeaderName = "access_token"

// MentorSuggestionLabel marks entries created from a mentor import.
const MentorSuggestionLabel = "#SugerenciaMentor"
