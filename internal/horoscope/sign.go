package horoscope

import (
	"fmt"
	"strconv"
	"strings"
)

// Sign is a zodiac sign.
type Sign string

const (
	Aries       Sign = "Aries"
	Taurus      Sign = "Taurus"
	Gemini      Sign = "Gemini"
	Cancer      Sign = "Cancer"
	Leo         Sign = "Leo"
	Virgo       Sign = "Virgo"
	Libra       Sign = "Libra"
	Scorpio     Sign = "Scorpio"
	Sagittarius Sign = "Sagittarius"
	Capricorn   Sign = "Capricorn"
	Aquarius    Sign = "Aquarius"
	Pisces      Sign = "Pisces"
)

func (s Sign) String() string { return string(s) }

// daysInMonth allows Feb 29 so leap-day birthdays resolve.
var daysInMonth = [12]int{31, 29, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// SignForBirthday parses a birthday in "YYYY-MM-DD" or "MM-DD" form and maps
// it onto a zodiac sign by the usual inclusive date ranges.
func SignForBirthday(birthday string) (Sign, error) {
	parts := strings.Split(strings.TrimSpace(birthday), "-")
	var monthText, dayText string
	switch len(parts) {
	case 3:
		monthText, dayText = parts[1], parts[2]
	case 2:
		monthText, dayText = parts[0], parts[1]
	default:
		return "", fmt.Errorf("invalid birthday %q: use YYYY-MM-DD or MM-DD", birthday)
	}
	month, err := strconv.Atoi(monthText)
	if err != nil {
		return "", fmt.Errorf("invalid birthday month %q: %w", monthText, err)
	}
	day, err := strconv.Atoi(dayText)
	if err != nil {
		return "", fmt.Errorf("invalid birthday day %q: %w", dayText, err)
	}
	return signFor(month, day)
}

func signFor(month, day int) (Sign, error) {
	if month < 1 || month > 12 {
		return "", fmt.Errorf("invalid month %d", month)
	}
	if day < 1 || day > daysInMonth[month-1] {
		return "", fmt.Errorf("invalid day %d for month %d", day, month)
	}

	switch {
	case (month == 12 && day >= 22) || (month == 1 && day <= 19):
		return Capricorn, nil
	case (month == 1 && day >= 20) || (month == 2 && day <= 18):
		return Aquarius, nil
	case (month == 2 && day >= 19) || (month == 3 && day <= 20):
		return Pisces, nil
	case (month == 3 && day >= 21) || (month == 4 && day <= 19):
		return Aries, nil
	case (month == 4 && day >= 20) || (month == 5 && day <= 20):
		return Taurus, nil
	case (month == 5 && day >= 21) || (month == 6 && day <= 20):
		return Gemini, nil
	case (month == 6 && day >= 21) || (month == 7 && day <= 22):
		return Cancer, nil
	case (month == 7 && day >= 23) || (month == 8 && day <= 22):
		return Leo, nil
	case (month == 8 && day >= 23) || (month == 9 && day <= 22):
		return Virgo, nil
	case (month == 9 && day >= 23) || (month == 10 && day <= 22):
		return Libra, nil
	case (month == 10 && day >= 23) || (month == 11 && day <= 21):
		return Scorpio, nil
	default:
		return Sagittarius, nil
	}
}
