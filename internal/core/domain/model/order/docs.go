// Package order contains the Order aggregate and its status state machine.
//
// An order is created in Processing or Ready, moves to Shipping when it leaves
// the workshop and ends up Delivered or Returned. Which moves are accepted is
// decided by a TransitionPolicy (strict follows the recommended table,
// permissive accepts any change). The aggregate never touches stock itself:
// the stock effect of a transition or of an item-list edit is planned by the
// domain services from the values Transition and ReplaceItems return.
//
// Record and RestoreOrder are the persistence boundary, including the
// default-fill of legacy records that predate statuses and item lists.
package order
