// Package model defines the value types exchanged between the layout
// pipeline stages: diagram inputs, positioned outputs, overlays, and
// constraint results.
//
// The types fall into three groups:
//
//   - Input types (DiagramInput, BlockData, ConnectorData, LayerData,
//     ColorPalette): constructed once per request by an upstream producer
//     and treated as read-only by every stage.
//
//   - Intermediate types (ElementPosition, ConnectorPosition): raw strategy
//     output, not yet text-measured. Consumed immediately by the composer
//     and never serialized.
//
//   - Output types (PositionedLayout, PositionedElement, PositionedConnector,
//     PositionedText): the terminal artifact of the layout engine. All
//     coordinates are in inches; downstream renderers convert to EMUs at
//     the serialization boundary using EMUPerInch.
//
// All serializable types carry JSON and BSON tags so they round-trip through
// the cache and the layout archive without separate DTOs.
package model
