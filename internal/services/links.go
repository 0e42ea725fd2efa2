package services

import (
	"net/url"
	"strings"

	apperrors "github.com/appnity/prepportal-backend/pkg/errors"
)

// Judges a DSA problem link may point at. Subdomains are accepted.
var allowedJudgeHosts = []string{
	"leetcode.com",
	"leetcode.cn",
	"geeksforgeeks.org",
	"codeforces.com",
	"codechef.com",
	"hackerrank.com",
	"interviewbit.com",
	"naukri.com",
	"spoj.com",
	"atcoder.jp",
}

const maxLinkLength = 2048

func hostAllowed(host string, allowed []string) bool {
	host = strings.ToLower(strings.TrimPrefix(host, "www."))
	for _, a := range allowed {
		if host == a || strings.HasSuffix(host, "."+a) {
			return true
		}
	}
	return false
}

// validateLink accepts absolute http(s) URLs only.
func validateLink(field, raw string) (*url.URL, error) {
	if len(raw) > maxLinkLength {
		return nil, apperrors.Validation(field + " is too long")
	}
	lower := strings.ToLower(raw)
	if strings.Contains(lower, "<script") || strings.Contains(lower, "javascript:") {
		return nil, apperrors.Validation(field + " is not a safe link")
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "https" && u.Scheme != "http") {
		return nil, apperrors.Validation(field + " must be an http or https URL")
	}
	return u, nil
}

// validateDSALink also requires a known judge host.
func validateDSALink(raw string) error {
	u, err := validateLink("dsaProblemLink", raw)
	if err != nil {
		return err
	}
	if !hostAllowed(u.Hostname(), allowedJudgeHosts) {
		return apperrors.Validation("dsaProblemLink must point to a supported judge such as LeetCode, GeeksforGeeks or Codeforces")
	}
	return nil
}

// validatePDFLink accepts paths returned by the local file store as well as
// absolute URLs from object storage.
func validatePDFLink(raw string) error {
	if strings.HasPrefix(raw, "/uploads/") && !strings.Contains(raw, "..") {
		return nil
	}
	_, err := validateLink("pdfUrl", raw)
	return err
}

// validateLinks checks every link field that is set.
func (in *ContentInput) validateLinks() error {
	if in.SourceURL != "" {
		if _, err := validateLink("sourceUrl", in.SourceURL); err != nil {
			return err
		}
	}
	if in.YoutubeSolutionLink != "" {
		if _, err := validateLink("youtubeSolutionLink", in.YoutubeSolutionLink); err != nil {
			return err
		}
	}
	if in.DSAProblemLink != "" {
		if err := validateDSALink(in.DSAProblemLink); err != nil {
			return err
		}
	}
	if in.PDFURL != "" {
		if err := validatePDFLink(in.PDFURL); err != nil {
			return err
		}
	}
	return nil
}
