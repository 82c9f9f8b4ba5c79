package utils // package utils provides helper functions for token creation and hashing

import (
    "time" // time utilities for generating expirations

    "github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// AccessToken represents a signed JWT access token along with its expiry.
// The Token field contains the JWT string.  Exp stores the expiration
// timestamp as a time.Time.  The signed value is also persisted to the
// jwt_tokens table at login time so that individual sessions can be
// revoked server-side before their natural expiry.
type AccessToken struct {
    Token string    // the serialized JWT string
    Exp   time.Time // the UTC expiration time
}

// NewAccessToken builds and signs an HS256 JWT for a user.  It takes the
// signing secret, the username, the user ID, the user's role, and a TTL in
// minutes.  The JWT carries the subject (sub) as the username — the same
// key the users table is unique on — plus a numeric user_id claim, the
// role, expiration (exp) and issued at (iat).
func NewAccessToken(secret, username string, userID uint64, role string, ttlMin int) (AccessToken, error) {
    // Calculate the expiration time by adding the TTL to the current UTC time.
    exp := time.Now().UTC().Add(time.Duration(ttlMin) * time.Minute)
    claims := jwt.MapClaims{
        "sub":     username,
        "user_id": userID,
        "role":    role,
        "exp":     exp.Unix(),
        "iat":     time.Now().UTC().Unix(),
    }
    t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
    // Sign the token with the provided secret and obtain the string form.  If
    // signing fails, return the error and a zero AccessToken.
    signed, err := t.SignedString([]byte(secret))
    if err != nil {
        return AccessToken{}, err
    }
    return AccessToken{Token: signed, Exp: exp}, nil
}

// ParseAccessToken verifies the signature and expiry of a serialized access
// token and returns its claims.  Tokens signed with anything other than
// HMAC are rejected.  Expired tokens fail parsing via the registered exp
// claim.  Note that this check is purely cryptographic: whether the token
// row still exists in jwt_tokens is not consulted here.
func ParseAccessToken(secret, raw string) (jwt.MapClaims, error) {
    tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
        if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
            return nil, jwt.ErrSignatureInvalid
        }
        return []byte(secret), nil
    })
    if err != nil {
        return nil, err
    }
    claims, ok := tok.Claims.(jwt.MapClaims)
    if !ok || !tok.Valid {
        return nil, jwt.ErrTokenInvalidClaims
    }
    return claims, nil
}
