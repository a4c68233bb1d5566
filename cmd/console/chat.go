package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/set-night/giftshop/internal/auth"
	"github.com/set-night/giftshop/internal/catalog"
	"github.com/set-night/giftshop/internal/checkout"
	"github.com/set-night/giftshop/internal/conversation"
	"github.com/set-night/giftshop/internal/domain"
	"github.com/set-night/giftshop/internal/router"
	"github.com/set-night/giftshop/internal/service"
)

// consoleChatID keys the single console session.
const consoleChatID = 1

// chatCmd starts an interactive shopping session
var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with the gift assistant",
	Long: `Start an interactive session. Type what you are looking for, or use a
command starting with ':'. Type :help for the list.`,
	Args: cobra.NoArgs,
	RunE: runChat,
}

func runChat(cmd *cobra.Command, args []string) error {
	shop, err := loadShop()
	if err != nil {
		return err
	}
	cat, err := catalog.Load()
	if err != nil {
		return err
	}

	store := service.NewSessionStore(shop, cat, conversation.New(cat), auth.New(shop))
	sess, _ := store.FindOrCreate(consoleChatID)
	r := newREPL(sess, cat, service.NewPacer(shop.ReplyDelay), cmd.OutOrStdout())

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	r.welcome()
	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		fmt.Fprint(r.out, "> ")
		if !scanner.Scan() {
			break
		}
		if quit := r.exec(ctx, scanner.Text()); quit {
			break
		}
	}
	r.pacer.Wait()
	return scanner.Err()
}

type repl struct {
	sess  *service.Session
	cat   *catalog.Catalog
	pacer *service.Pacer
	out   io.Writer
}

func newREPL(sess *service.Session, cat *catalog.Catalog, pacer *service.Pacer, out io.Writer) *repl {
	return &repl{sess: sess, cat: cat, pacer: pacer, out: out}
}

const helpText = `Commands:
  <text>                      ask the assistant
  :voice <text>               ask by voice transcript
  :prompts | :prompt <id>     list or use the welcome prompts
  :click <suggestion>         click a suggestion
  :continue                   continue shopping
  :add <product> [opt=value] [qty=n]
  :cart | :qty <n> <qty> | :rm <n> | :clear
  :checkout | :set <field> <value> | :gift | :pay <card|apple_pay|cash>
  :terms | :next | :back | :place
  :signin <email> <password> | :signup <name>|<email>|<password>|<confirm> | :signout
  :reset <email> | :orders | :screen <name>
  :help | :quit
Delivery fields: name phone street building district date slot instructions recipient giftmsg`

func (r *repl) welcome() {
	fmt.Fprintln(r.out, "Welcome! Tell me who you're shopping for, or try one of these:")
	r.printPrompts()
	fmt.Fprintln(r.out, "Type :help for commands.")
}

// exec runs one input line. It reports true when the session should end.
func (r *repl) exec(ctx context.Context, line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	if !strings.HasPrefix(line, ":") {
		r.ask(ctx, conversation.Typed(line))
		return false
	}

	name, rest, _ := strings.Cut(line[1:], " ")
	rest = strings.TrimSpace(rest)
	fields := strings.Fields(rest)

	var err error
	switch name {
	case "help":
		fmt.Fprintln(r.out, helpText)
	case "quit", "exit":
		return true
	case "voice":
		r.ask(ctx, conversation.Voice(rest))
	case "prompts":
		r.printPrompts()
	case "prompt":
		var reply conversation.Reply
		if reply, err = r.sess.AskPrompt(rest); err == nil {
			r.deliver(ctx, reply)
		}
	case "click":
		r.ask(ctx, conversation.Click(rest))
	case "continue":
		r.printMessage(r.sess.ContinueShopping())
	case "add":
		err = r.add(fields)
	case "cart":
		r.sess.Navigate(router.ScreenCart)
		r.printCart()
	case "qty":
		err = r.setQuantity(fields)
	case "rm":
		var id string
		if id, err = r.itemID(fields, 1); err == nil {
			if err = r.sess.RemoveItem(id); err == nil {
				r.printCart()
			}
		}
	case "clear":
		r.sess.ClearCart()
		r.printCart()
	case "checkout":
		if err = r.sess.StartCheckout(); err == nil {
			r.printCheckout()
		}
	case "set":
		err = r.setDelivery(fields)
	case "gift":
		err = r.updateDelivery(func(d *domain.DeliveryDetails) { d.IsGift = !d.IsGift })
	case "pay":
		if err = r.sess.SelectPayment(rest); err == nil {
			r.printCheckout()
		}
	case "terms":
		var v service.CheckoutView
		if v, err = r.sess.Checkout(); err == nil {
			if err = r.sess.AcceptTerms(!v.Terms); err == nil {
				r.printCheckout()
			}
		}
	case "next":
		if err = r.sess.CheckoutNext(); err == nil {
			r.printCheckout()
		}
	case "back":
		if r.sess.CheckoutBack() == router.ScreenCart {
			r.printCart()
		} else {
			r.printCheckout()
		}
	case "place":
		fmt.Fprintln(r.out, "Processing your order...")
		var order domain.Order
		if order, err = r.sess.PlaceOrder(ctx); err == nil {
			r.printOrder(order)
		}
	case "signin":
		if len(fields) != 2 {
			err = errUsage
			break
		}
		var u domain.User
		if u, err = r.sess.SignIn(ctx, fields[0], fields[1]); err == nil {
			fmt.Fprintf(r.out, "Welcome, %s!\n", u.Name)
		}
	case "signup":
		err = r.signUp(ctx, rest)
	case "signout":
		r.sess.SignOut()
		fmt.Fprintln(r.out, "Signed out.")
	case "reset":
		if err = r.sess.ResetPassword(ctx, rest); err == nil {
			fmt.Fprintf(r.out, "Reset link sent to %s.\n", rest)
		}
	case "orders":
		r.printOrders()
	case "screen":
		var s router.Screen
		if s, err = router.ParseScreen(rest); err == nil {
			fmt.Fprintf(r.out, "Screen: %s\n", r.sess.Navigate(s))
		}
	default:
		err = fmt.Errorf("unknown command :%s, type :help", name)
	}

	if err != nil {
		fmt.Fprintf(r.out, "! %s\n", describe(err))
	}
	return false
}

var errUsage = errors.New("wrong arguments, type :help")

// describe prefers the typed error's own message for shopper mistakes.
func describe(err error) string {
	var incomplete *checkout.DeliveryIncompleteError
	if errors.As(err, &incomplete) {
		return "please fill in: " + strings.Join(incomplete.Missing, ", ")
	}
	return err.Error()
}

func (r *repl) ask(ctx context.Context, in conversation.Input) {
	reply, err := r.sess.Ask(in)
	if err != nil {
		fmt.Fprintf(r.out, "! %s\n", describe(err))
		return
	}
	r.deliver(ctx, reply)
}

// deliver prints the reply after the simulated typing delay.
func (r *repl) deliver(ctx context.Context, reply conversation.Reply) {
	if reply.User.Voice {
		fmt.Fprintf(r.out, "(voice) %s\n", reply.User.Text)
	}
	fmt.Fprintln(r.out, "...")
	r.pacer.Schedule(ctx, consoleChatID, func() {
		r.sess.AppendAssistant(reply.Assistant)
		r.printMessage(reply.Assistant)
	})
	r.pacer.Wait()
}

// add customizes and adds a product: :add 1 size=Large message=Happy birthday qty=2.
func (r *repl) add(fields []string) error {
	if len(fields) == 0 {
		return errUsage
	}
	if _, err := r.sess.BeginCustomize(fields[0]); err != nil {
		return err
	}
	for key, value := range parseOptions(fields[1:]) {
		var err error
		if key == "qty" || key == "quantity" {
			n, convErr := strconv.Atoi(value)
			if convErr != nil {
				err = domain.ErrInvalidQuantity
			} else {
				err = r.sess.SetPendingQuantity(n)
			}
		} else {
			err = r.sess.SetPendingOption(key, value)
		}
		if err != nil {
			r.sess.CancelPending()
			return fmt.Errorf("%s: %w", key, err)
		}
	}

	_, msg, err := r.sess.CommitPending()
	if err != nil {
		r.sess.CancelPending()
		return err
	}
	r.printMessage(msg)
	return nil
}

// parseOptions reads key=value tokens. Tokens without '=' continue the
// previous value, so text values may contain spaces.
func parseOptions(tokens []string) map[string]string {
	out := make(map[string]string)
	last := ""
	for _, t := range tokens {
		if k, v, ok := strings.Cut(t, "="); ok && k != "" {
			out[k] = v
			last = k
			continue
		}
		if last != "" {
			out[last] += " " + t
		}
	}
	return out
}

// itemID maps a 1-based cart position to the line id.
func (r *repl) itemID(fields []string, want int) (string, error) {
	if len(fields) != want {
		return "", errUsage
	}
	n, err := strconv.Atoi(fields[0])
	items := r.sess.Cart().Items
	if err != nil || n < 1 || n > len(items) {
		return "", domain.ErrItemNotFound
	}
	return items[n-1].ID, nil
}

func (r *repl) setQuantity(fields []string) error {
	id, err := r.itemID(fields, 2)
	if err != nil {
		return err
	}
	qty, err := strconv.Atoi(fields[1])
	if err != nil {
		return domain.ErrInvalidQuantity
	}
	if err := r.sess.UpdateQuantity(id, qty); err != nil {
		return err
	}
	r.printCart()
	return nil
}

func (r *repl) setDelivery(fields []string) error {
	if len(fields) < 2 {
		return errUsage
	}
	field, value := fields[0], strings.Join(fields[1:], " ")

	var apply func(d *domain.DeliveryDetails)
	switch field {
	case "name":
		apply = func(d *domain.DeliveryDetails) { d.FullName = value }
	case "phone":
		apply = func(d *domain.DeliveryDetails) { d.Phone = value }
	case "street":
		apply = func(d *domain.DeliveryDetails) { d.Street = value }
	case "building":
		apply = func(d *domain.DeliveryDetails) { d.Building = value }
	case "instructions":
		apply = func(d *domain.DeliveryDetails) { d.Instructions = value }
	case "recipient":
		apply = func(d *domain.DeliveryDetails) { d.Recipient = value }
	case "giftmsg":
		apply = func(d *domain.DeliveryDetails) { d.GiftMessage = value }
	case "date":
		apply = func(d *domain.DeliveryDetails) { d.DeliveryDate = value }
	case "district":
		v, err := pick(checkout.Districts(), value)
		if err != nil {
			return err
		}
		apply = func(d *domain.DeliveryDetails) { d.District = v }
	case "slot":
		v, err := pick(checkout.TimeSlots(), value)
		if err != nil {
			return err
		}
		apply = func(d *domain.DeliveryDetails) { d.TimeSlot = v }
	default:
		return fmt.Errorf("unknown field %q", field)
	}
	return r.updateDelivery(apply)
}

func (r *repl) updateDelivery(apply func(d *domain.DeliveryDetails)) error {
	if err := r.sess.UpdateDelivery(apply); err != nil {
		return err
	}
	r.printCheckout()
	return nil
}

// pick accepts a 1-based position or the choice itself, case-insensitively.
func pick(choices []string, value string) (string, error) {
	if n, err := strconv.Atoi(value); err == nil && n >= 1 && n <= len(choices) {
		return choices[n-1], nil
	}
	for _, c := range choices {
		if strings.EqualFold(c, value) {
			return c, nil
		}
	}
	return "", fmt.Errorf("%q: choose one of %s", value, strings.Join(choices, "; "))
}

// signUp takes name|email|password|confirm, accepting the terms.
func (r *repl) signUp(ctx context.Context, rest string) error {
	parts := strings.Split(rest, "|")
	if len(parts) != 4 {
		return errUsage
	}
	u, err := r.sess.SignUp(ctx, auth.SignUpForm{
		Name:            strings.TrimSpace(parts[0]),
		Email:           strings.TrimSpace(parts[1]),
		Password:        strings.TrimSpace(parts[2]),
		ConfirmPassword: strings.TrimSpace(parts[3]),
		AcceptTerms:     true,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(r.out, "Welcome, %s!\n", u.Name)
	return nil
}
