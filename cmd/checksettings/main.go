package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"orderdesk/internal/secret"
	"orderdesk/internal/settings"
)

// credentialStore — операции хранилища паролей, нужные этой утилите.
type credentialStore interface {
	Store(account, password string) error
	Delete(account string) error
}

// CLI-приложение для проверки файла настроек и управления паролями
// учетных записей в хранилище ОС.
func main() {
	path := flag.String("file", "settings.toml", "путь к файлу настроек")
	departments := flag.String("departments", "", "отделы через запятую для проверки выбора отправителя")
	setPassword := flag.String("set-password", "", "ключ учетной записи: сохранить пароль из stdin")
	clearPassword := flag.String("clear-password", "", "ключ учетной записи: удалить сохраненный пароль")
	flag.Parse()

	sets, err := settings.Load(*path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "settings: %v\n", err)
		os.Exit(1)
	}

	if *setPassword != "" || *clearPassword != "" {
		if err := manageCredential(sets, secret.NewKeyring(), os.Stdin, os.Stdout, *setPassword, *clearPassword); err != nil {
			fmt.Fprintf(os.Stderr, "credentials: %v\n", err)
			os.Exit(1)
		}
		return
	}

	fmt.Printf("компания: %s\n", sets.Company.Name)
	fmt.Printf("отделы: %s\n", strings.Join(sets.Departments, ", "))
	fmt.Printf("учетные записи (%d):\n", len(sets.Accounts))
	for _, key := range sets.AccountKeys() {
		acct := sets.Accounts[key]
		fmt.Printf("  %-12s %s <%s>\n", key, acct.DisplayName, acct.Address)
	}

	var selected []string
	for _, d := range strings.Split(*departments, ",") {
		if d = strings.TrimSpace(d); d != "" {
			selected = append(selected, d)
		}
	}

	key := sets.DefaultAccount(selected)
	if key == "" {
		fmt.Println("отправитель по умолчанию: не определен")
		return
	}
	fmt.Printf("отправитель по умолчанию: %s <%s>\n", key, sets.Accounts[key].Address)
}

// manageCredential сохраняет или удаляет пароль учетной записи.
// Ключ переводится в адрес: хранилище ведется по адресам отправителей.
func manageCredential(sets *settings.Settings, store credentialStore, in io.Reader, out io.Writer, setKey, clearKey string) error {
	if setKey != "" {
		acct, ok := sets.Accounts[setKey]
		if !ok {
			return fmt.Errorf("неизвестная учетная запись %q", setKey)
		}
		fmt.Fprintf(out, "пароль для %s: ", acct.Address)
		password, err := readLine(in)
		if err != nil {
			return err
		}
		if password == "" {
			return errors.New("пустой пароль не сохраняется")
		}
		if err := store.Store(acct.Address, password); err != nil {
			return err
		}
		fmt.Fprintf(out, "пароль для %s сохранен\n", acct.Address)
		return nil
	}

	acct, ok := sets.Accounts[clearKey]
	if !ok {
		return fmt.Errorf("неизвестная учетная запись %q", clearKey)
	}
	if err := store.Delete(acct.Address); err != nil {
		return err
	}
	fmt.Fprintf(out, "пароль для %s удален\n", acct.Address)
	return nil
}

func readLine(in io.Reader) (string, error) {
	scanner := bufio.NewScanner(in)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", err
		}
		return "", errors.New("ввод прерван")
	}
	return strings.TrimSpace(scanner.Text()), nil
}
