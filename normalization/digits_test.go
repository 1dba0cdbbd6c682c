package normalization

import "testing"

func TestConvertSpokenDigits(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		minLen   int
		expected string
	}{
		{
			name:     "Семизначный артикул по словам",
			input:    "девять один семь четыре два девять семь",
			minLen:   5,
			expected: "9174297",
		},
		{
			name:     "Разговорные варианты",
			input:    "восем четыри сем адин девить",
			minLen:   5,
			expected: "84719",
		},
		{
			name:     "Посторонние слова отбрасываются",
			input:    "артикул восемь четыре семь четыре два",
			minLen:   5,
			expected: "84742",
		},
		{
			name:     "Смешанные цифры и слова",
			input:    "91 семь четыре два девять семь",
			minLen:   5,
			expected: "9174297",
		},
		{
			name:     "Короткая последовательность возвращается как есть",
			input:    "два три",
			minLen:   5,
			expected: "два три",
		},
		{
			name:     "Нет цифровых слов",
			input:    "какие есть акции",
			minLen:   5,
			expected: "какие есть акции",
		},
		{
			name:     "Пустая строка",
			input:    "",
			minLen:   4,
			expected: "",
		},
		{
			name:     "Пунктуация вокруг токенов",
			input:    "девять, один. семь! четыре два",
			minLen:   5,
			expected: "91742",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ConvertSpokenDigits(tt.input, tt.minLen)
			if got != tt.expected {
				t.Errorf("ConvertSpokenDigits(%q, %d) = %q, want %q",
					tt.input, tt.minLen, got, tt.expected)
			}
		})
	}
}

func TestConvertSpokenDigitsExactLength(t *testing.T) {
	// Ровно minLen цифр — результат принимается
	got := ConvertSpokenDigits("один два три четыре пять", 5)
	if got != "12345" {
		t.Errorf("ConvertSpokenDigits = %q, want %q", got, "12345")
	}

	// На одну цифру меньше — возвращается вход
	input := "один два три четыре"
	if got := ConvertSpokenDigits(input, 5); got != input {
		t.Errorf("ConvertSpokenDigits = %q, want вход без изменений %q", got, input)
	}
}
