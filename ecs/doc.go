// Package ecs provides ECS adapters for wicker's UI event forwarding.
//
// The primary adapter is [NewDonburiSink], which bridges wicker UI events
// (clicks, selection changes, window open/close) into a [Donburi] world as
// typed events. Subscribe to [UIEventType] in your ECS systems to receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	manager.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
