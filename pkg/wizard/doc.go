// Package wizard runs a multi-section questionnaire session.
//
// A Session wires the form state, conditional rules, section validation,
// navigation and draft persistence together and exposes them as explicit
// commands (Set, Next, Prev, GoTo, Submit) so any front end can drive it.
//
//	sess, _ := wizard.New(s, wizard.WithStore(kv), wizard.WithNotifier(n))
//	_ = sess.Load(ctx)
//	_ = sess.Set(ctx, "clinicName", "Acme Clinic")
//	if err := sess.Next(2); errors.Is(err, validation.ErrIncomplete) {
//		// highlight sess.Invalid()
//	}
package wizard
