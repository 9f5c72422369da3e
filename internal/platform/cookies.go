package platform

import (
	"bufio"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/publicsuffix"
)

// Netscape cookie file columns
const (
	CookieDomain = iota
	CookieHostOnly
	CookiePath
	CookieSecure
	CookieExpiration
	CookieName
	CookieValue
	CookiePieces
)

// Netscape cookie file markers
const (
	HTTPOnlyPrefix = "#httponly_"
	YouTubeDomain  = "youtube.com"
)

// youtubeURL is the page yt-dlp sends cookies to
var youtubeURL = &url.URL{Scheme: "https", Host: "www." + YouTubeDomain, Path: "/"}

// CookieFile is a parsed Netscape cookies.txt
type CookieFile struct {
	Path    string
	Jar     *cookiejar.Jar
	Count   int
	Domains []string
}

// HasYouTubeCookies reports whether the jar would send any cookie to youtube.com
func (cf *CookieFile) HasYouTubeCookies() bool {
	return cf.Jar != nil && len(cf.Jar.Cookies(youtubeURL)) > 0
}

// ParseNetscapeCookies loads a Netscape formatted cookies file into a jar.
// Malformed lines and comments are skipped; only I/O failures are errors.
func ParseNetscapeCookies(fname string) (*CookieFile, error) {
	jar, err := cookiejar.New(&cookiejar.Options{
		PublicSuffixList: publicsuffix.List,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	file, err := os.Open(fname)
	if err != nil {
		return nil, fmt.Errorf("failed to open cookies file: %w", err)
	}
	defer file.Close()

	byDomain := make(map[string][]*http.Cookie)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		cookie, ok := parseCookieLine(scanner.Text())
		if !ok {
			continue
		}
		byDomain[cookie.Domain] = append(byDomain[cookie.Domain], cookie)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read cookies file: %w", err)
	}

	cf := &CookieFile{Path: fname, Jar: jar}
	for domain, cookies := range byDomain {
		u, err := url.Parse("https://" + strings.TrimPrefix(domain, "."))
		if err != nil {
			continue
		}
		jar.SetCookies(u, cookies)
		cf.Count += len(cookies)
		cf.Domains = append(cf.Domains, domain)
	}
	sort.Strings(cf.Domains)

	return cf, nil
}

// parseCookieLine converts one tab separated entry into a cookie
func parseCookieLine(line string) (*http.Cookie, bool) {
	parts := strings.Split(strings.TrimRight(line, "\r"), "\t")
	if len(parts) != CookiePieces {
		return nil, false
	}

	// JSON valued cookies are not valid per RFC 6265 and net/http logs about them
	if strings.Contains(parts[CookieValue], `"`) {
		return nil, false
	}

	domain := strings.ToLower(parts[CookieDomain])
	httpOnly := false
	if strings.HasPrefix(domain, HTTPOnlyPrefix) {
		httpOnly = true
		domain = strings.TrimPrefix(domain, HTTPOnlyPrefix)
	}
	if domain == "" || strings.HasPrefix(domain, "#") {
		return nil, false
	}

	cookie := &http.Cookie{
		Domain:   domain,
		Path:     parts[CookiePath],
		Secure:   strings.EqualFold(parts[CookieSecure], "true"),
		Name:     parts[CookieName],
		Value:    parts[CookieValue],
		HttpOnly: httpOnly,
	}

	// 0 marks a session cookie; a zero Expires keeps the jar from dropping it
	if expire, _ := strconv.ParseInt(parts[CookieExpiration], 10, 64); expire > 0 {
		cookie.Expires = time.Unix(expire, 0)
	}
	return cookie, true
}
