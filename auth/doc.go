// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth verifies that delivery-status webhooks come from the SMS
provider. It does not authenticate users.

# Signatures

The provider signs each webhook with the account auth token:

	sig := auth.ComputeSignature(token, fullURL, form)

The signed string is the full request URL followed by every POST parameter
name and value, sorted by name. The MAC is HMAC-SHA1, base64 encoded, and
arrives in the X-Twilio-Signature header.

# Validation

	fullURL := auth.RequestURL(r, cfg.PublicURL)
	if err := auth.ValidateSignature(token, fullURL, r.PostForm, r.Header.Get(auth.SignatureHeader)); err != nil {
		// 403
	}

Comparison uses hmac.Equal. Behind a proxy, set PublicURL so the URL
rebuilt here matches the one the provider called.

# Errors

	ErrMissingSignature  // header absent
	ErrInvalidSignature  // header does not match
*/
package auth
